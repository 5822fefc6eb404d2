/*
Package orm provides model buckets on top of a KVStore.

Each bucket owns a key prefix ("<name>:") and stores models serialized with
their own Marshal method. Models are validated before every write.
*/
package orm
