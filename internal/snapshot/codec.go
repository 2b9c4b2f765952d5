// Package snapshot persists fetched migration responses to disk so the CLI
// can validate, inspect, and render without touching the backend. Snapshots
// are JSON, optionally LZ4-framed for the multi-year merges that run to tens
// of megabytes.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Default indentation for plain JSON snapshots.
const jsonIndent = "  "

// File extensions per codec.
const (
	jsonExtension = ".json"
	lz4Extension  = ".json.lz4"
)

// Codec serializes snapshot state.
type Codec interface {
	// Encode writes state to w.
	Encode(w io.Writer, state any) error
	// Decode reads state from r.
	Decode(r io.Reader, state any) error
	// Extension returns the codec's file extension.
	Extension() string
}

// JSONCodec stores snapshots as indented JSON.
type JSONCodec struct{}

// Encode implements Codec.
func (JSONCodec) Encode(w io.Writer, state any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", jsonIndent)

	err := enc.Encode(state)
	if err != nil {
		return fmt.Errorf("json encode snapshot: %w", err)
	}

	return nil
}

// Decode implements Codec.
func (JSONCodec) Decode(r io.Reader, state any) error {
	err := json.NewDecoder(r).Decode(state)
	if err != nil {
		return fmt.Errorf("json decode snapshot: %w", err)
	}

	return nil
}

// Extension implements Codec.
func (JSONCodec) Extension() string { return jsonExtension }

// LZ4Codec stores snapshots as LZ4-framed compact JSON.
type LZ4Codec struct{}

// Encode implements Codec.
func (LZ4Codec) Encode(w io.Writer, state any) error {
	zw := lz4.NewWriter(w)

	encodeErr := json.NewEncoder(zw).Encode(state)
	if encodeErr != nil {
		return fmt.Errorf("lz4 encode snapshot: %w", encodeErr)
	}

	closeErr := zw.Close()
	if closeErr != nil {
		return fmt.Errorf("lz4 flush snapshot: %w", closeErr)
	}

	return nil
}

// Decode implements Codec.
func (LZ4Codec) Decode(r io.Reader, state any) error {
	err := json.NewDecoder(lz4.NewReader(r)).Decode(state)
	if err != nil {
		return fmt.Errorf("lz4 decode snapshot: %w", err)
	}

	return nil
}

// Extension implements Codec.
func (LZ4Codec) Extension() string { return lz4Extension }
