// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object stores using the native MinIO SDK.
//
// Use this backend instead of the s3 package when talking to MinIO,
// Wasabi, or another S3-compatible endpoint where the native SDK's
// path-style addressing and lighter dependency footprint are
// preferable.
package minio
