/*
Package recent tracks the representatives each user viewed most recently.

GET /representatives/{id} calls Touch when the request carries an X-User-ID
header; GET /users/{user}/recent reads List. Only the last MaxRecent (5)
distinct representatives are kept, most recent first.

Memory is used by default. When REDIS_URL is set the Redis tracker keeps the
lists in sorted sets named recent:<user>, scored by view time in
milliseconds and trimmed with ZREMRANGEBYRANK on every write, so the lists
survive restarts and are shared by every instance.
*/
package recent
