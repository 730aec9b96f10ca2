// SPDX-License-Identifier: MIT

// Package archive persists run reports. Two backends share the Store
// interface: an in-process MemoryStore and a SQLiteStore backed by the pure-Go
// modernc.org/sqlite driver. Reports are stored as versioned MessagePack
// payloads next to a small summary row used for listings.
package archive
