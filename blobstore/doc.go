// Package blobstore abstracts where snapshot blobs live.
//
// A BlobStore holds immutable, named blobs. Snapshots are written once
// through Create/Put and only ever read afterwards, which matches the
// append-only contract of the containers they serialize.
//
// Implementations:
//
//   - MemoryStore: in-memory, for tests.
//   - LocalStore: local filesystem.
//   - CachingStore: read-through cache in front of a remote store.
//   - s3.Store: Amazon S3 (aws-sdk-go-v2).
//   - minio.Store: MinIO and other S3-compatible endpoints.
package blobstore
