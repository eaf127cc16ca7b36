/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary key, derived by the caller.
* Easy queries for one and iteration over all.

ModelBucket is the type safe API on top of a Bucket that all extensions
use. Create refuses to overwrite an existing entity, which gives every
bucket "initialize once" semantics for free.
*/
package orm
