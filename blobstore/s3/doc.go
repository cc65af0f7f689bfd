// Package s3 implements blobstore.BlobStore on Amazon S3 using
// aws-sdk-go-v2. Uploads stream through the s3 transfer manager, so
// large snapshots never have to be buffered in memory.
package s3
