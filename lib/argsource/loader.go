// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argsource

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"
)

// StdinLocator makes a Loader read the document from standard input.
const StdinLocator = "-"

// DefaultMaxDocumentSize bounds a document at every layer: as read, and
// after each decryption or decompression.
const DefaultMaxDocumentSize = 16 << 20

var (
	// ErrNoIdentities is returned when an .age document is loaded by a
	// Loader that has no decryption identities.
	ErrNoIdentities = errors.New("no age identities configured")

	// ErrDocumentTooLarge is returned when a document or one of its
	// unwrapped layers exceeds the loader's size limit.
	ErrDocumentTooLarge = errors.New("argument document too large")
)

// Document is the loaded, decrypted and decompressed content of a locator.
type Document struct {
	// Locator is the value the document was loaded from.
	Locator string

	// Name is the locator with transport suffixes removed, used for format
	// inference: "deploy.yaml.zst.age" has Name "deploy.yaml".
	Name string

	Data []byte

	// Digest is the BLAKE3-256 hash of Data.
	Digest [32]byte
}

// Loader reads argument documents. Each Load is a scoped acquisition: the
// locator is opened, read fully, and closed before Load returns, on every
// path.
type Loader struct {
	identities []age.Identity
	stdin      io.Reader
	logger     *slog.Logger
	maxSize    int64
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithIdentities sets the age identities used to decrypt .age documents.
func WithIdentities(identities ...age.Identity) LoaderOption {
	return func(loader *Loader) {
		loader.identities = append(loader.identities, identities...)
	}
}

// WithStdin replaces os.Stdin as the reader behind [StdinLocator].
func WithStdin(reader io.Reader) LoaderOption {
	return func(loader *Loader) {
		loader.stdin = reader
	}
}

// WithLoaderLogger sets the logger for load events. Nil discards.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(loader *Loader) {
		loader.logger = logger
	}
}

// WithMaxDocumentSize replaces [DefaultMaxDocumentSize].
func WithMaxDocumentSize(size int64) LoaderOption {
	return func(loader *Loader) {
		loader.maxSize = size
	}
}

// NewLoader returns a Loader reading from the local filesystem.
func NewLoader(options ...LoaderOption) *Loader {
	loader := &Loader{stdin: os.Stdin, maxSize: DefaultMaxDocumentSize}
	for _, option := range options {
		option(loader)
	}
	if loader.logger == nil {
		loader.logger = slog.New(slog.DiscardHandler)
	}
	return loader
}

// ReadIdentityFile parses an age identity file (one AGE-SECRET-KEY-1...
// line per identity, # comments allowed).
func ReadIdentityFile(path string) ([]age.Identity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening identity file: %w", err)
	}
	defer file.Close()

	identities, err := age.ParseIdentities(file)
	if err != nil {
		return nil, fmt.Errorf("parsing identity file %s: %w", path, err)
	}
	return identities, nil
}

// Load reads locator and removes its transport layers, outermost first:
// .age is decrypted, .zst and .lz4 are decompressed.
func (l *Loader) Load(locator string) (*Document, error) {
	data, err := l.read(locator)
	if err != nil {
		return nil, err
	}

	name := locator
	for {
		extension := strings.ToLower(filepath.Ext(name))
		unwrap, ok := l.transport(extension)
		if !ok {
			break
		}
		data, err = unwrap(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %s layer: %w", locator, strings.TrimPrefix(extension, "."), err)
		}
		name = name[:len(name)-len(extension)]
	}

	document := &Document{
		Locator: locator,
		Name:    name,
		Data:    data,
		Digest:  blake3.Sum256(data),
	}
	l.logger.Debug("argument document loaded",
		"locator", locator,
		"bytes", len(data),
		"blake3", hex.EncodeToString(document.Digest[:8]),
	)
	return document, nil
}

func (l *Loader) read(locator string) ([]byte, error) {
	if locator == StdinLocator {
		data, err := l.readLimited(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		return data, nil
	}

	file, err := os.Open(locator)
	if err != nil {
		return nil, fmt.Errorf("opening argument document: %w", err)
	}
	defer file.Close()

	data, err := l.readLimited(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", locator, err)
	}
	return data, nil
}

func (l *Loader) transport(extension string) (func([]byte) ([]byte, error), bool) {
	switch extension {
	case ".age":
		return l.decrypt, true
	case ".zst":
		return l.decompressZstd, true
	case ".lz4":
		return l.decompressLZ4, true
	default:
		return nil, false
	}
}

func (l *Loader) decrypt(data []byte) ([]byte, error) {
	if len(l.identities) == 0 {
		return nil, ErrNoIdentities
	}
	reader, err := age.Decrypt(bytes.NewReader(data), l.identities...)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := l.readLimited(reader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted plaintext: %w", err)
	}
	return plaintext, nil
}

func (l *Loader) decompressZstd(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderMaxMemory(uint64(l.maxSize)))
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()
	return l.readLimited(decoder)
}

func (l *Loader) decompressLZ4(data []byte) ([]byte, error) {
	return l.readLimited(lz4.NewReader(bytes.NewReader(data)))
}

// readLimited reads all of reader, failing once more than maxSize bytes
// arrive.
func (l *Loader) readLimited(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, l.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrDocumentTooLarge, l.maxSize)
	}
	return data, nil
}
