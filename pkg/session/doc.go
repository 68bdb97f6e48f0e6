/*
Package session serializes access to one session's scene history.

The decision core does not serialize concurrent events for the same
(chat, user) pair: two events racing for one session would interleave their
read-modify-write of history. The Manager closes that gap at the collaborator
layer with a ref-counted in-process mutex per session key, optionally combined
with a distributed locker when multiple engine replicas share one store.
*/
package session
