package middleware

import "time"

func (m *IdemResMap) SetClock(now func() time.Time) { m.now = now }
