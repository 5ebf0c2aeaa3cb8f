/*
Package logger provides logging functionality to a responsable app by defining the required behavior in [Logger]
and providing an implementation of it with [TextLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [TextLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*TextLogger.Warn], [*TextLogger.Error], and [*TextLogger.Fatal] produce messages.

# TextLogger

Log messages emitted by [TextLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [WARN] http/resp/responder.go:43 'unable to save session' log_context: {"request_id":"5b1c..."}

The log context is a JSON-encoded [LogContext].
It carries data inessential to the message proper
that gives a fuller picture of the application state at the time of logging.

# SentryLogger

[NewSentryLogger] wraps a [TextLogger] and additionally reports any [LogContext.Error]
logged at WARN or above to Sentry.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger
