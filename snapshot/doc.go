// Package snapshot serializes completed frozen containers and rebuilds
// them through the public insertion API.
//
// A snapshot is an ordered sequence of (key, value) or (index, value)
// pairs behind a self-describing header: magic, format version, codec
// name, compression, and entry count. Readers select the codec by the
// name recorded in the header, so files written with a different
// configured default still open.
//
// Reconstruction replays the pairs with plain Insert/Append calls in
// the order they were written, never bypassing the containers' mutation
// gate. A rebuilt container is observationally equal to the original:
// the same keys and indices map to equal values. The stored pointers
// are of course fresh allocations; pointer identity is per container
// lifetime, not per snapshot.
//
//	var buf bytes.Buffer
//	err := snapshot.WriteMap(&buf, m, snapshot.WithCompression(snapshot.Zstd))
//	restored, err := snapshot.ReadMap[string, string](&buf)
//
// Snapshots can be published to and fetched from any blobstore backend
// with Publish and Fetch.
package snapshot
