/*
Package postgres manages the database connection and paginates queries through it.

[Connect] opens a PostgreSQL connection through GORM and ensures all migrations have run.
The situation where the database is simply a target for some testing has been considered as well:
in this scenario, the public schema is dropped before migrating.

[Paginate], [SimplePaginate] and [CursorPaginate] run a query for a single page of records,
returning the records alongside the envelope.Paginator describing the page.
*/
package postgres
