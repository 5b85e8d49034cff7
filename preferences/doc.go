/*
Package preferences is the only write path for user ratings.

Service.Set validates its arguments before touching storage:

  - user id and vote id must be non-empty
  - importance must lie in 1..Scale.Max (3 or 5)
  - the vote must already exist in the VoteStore

A valid rating is written with a single PreferenceStore.Upsert, which is
atomic per (user, vote). There is no read-then-write branch here, so two
concurrent Set calls for the same key can never create two records.
*/
package preferences
