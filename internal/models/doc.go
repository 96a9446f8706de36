// Package models defines the data transfer objects exchanged with the SongBox backend.
//
// All types mirror backend-owned JSON shapes: the client never computes
// ratings, follow graphs, or comment ordering authoritatively; it renders
// what the backend returns. The only client-side logic here is presentation
// convenience over server data:
//
//   - [SortCommentsByLikes] : ordering a fetched page for display
//   - [MergeComments] : combining paginated comment fetches
//   - [User.Follows] : membership test over the following list
//
// [User] is owned exclusively by the session manager; screens receive
// read-only copies and install refreshed copies after backend mutations.
package models
