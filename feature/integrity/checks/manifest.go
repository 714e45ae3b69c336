package checks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"immich-album-sync/core/manifest"
	"immich-album-sync/core/reconcile"
	"immich-album-sync/core/target"
)

// ManifestReport compares manifest entries with the destination.
type ManifestReport struct {
	Checked int `json:"checked"`
	// Missing lists recorded files that are gone from the destination.
	Missing []string `json:"missing"`
	// SizeMismatch lists files whose size differs from the recorded one.
	SizeMismatch []string `json:"size_mismatch"`
	// HashMismatch lists files whose content no longer matches the recorded sha256.
	HashMismatch []string `json:"hash_mismatch"`
	// Untracked lists files whose stem has no manifest entry.
	Untracked []string `json:"untracked"`
	// Verified is true when contents were hashed.
	Verified bool `json:"verified"`
}

// CheckManifest verifies every entry against the destination listing. With
// verifyHash each file is read back and hashed.
func CheckManifest(ctx context.Context, dest target.Target, entries []manifest.Entry, local []target.Entry, verifyHash bool) (*ManifestReport, error) {
	report := &ManifestReport{
		Missing:      []string{},
		SizeMismatch: []string{},
		HashMismatch: []string{},
		Untracked:    []string{},
		Verified:     verifyHash,
	}

	present := make(map[string]target.Entry, len(local))
	for _, e := range local {
		if e.Regular {
			present[e.Name] = e
		}
	}

	tracked := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Checked++
		tracked[entry.AssetID] = struct{}{}

		file, ok := present[entry.FileName]
		if !ok {
			report.Missing = append(report.Missing, entry.FileName)
			continue
		}
		if file.Size != entry.Size {
			report.SizeMismatch = append(report.SizeMismatch, entry.FileName)
			continue
		}
		if verifyHash && entry.SHA256 != "" {
			sum, err := hashEntry(ctx, dest, entry.FileName)
			if err != nil {
				return nil, fmt.Errorf("failed to hash %s: %w", entry.FileName, err)
			}
			if sum != entry.SHA256 {
				report.HashMismatch = append(report.HashMismatch, entry.FileName)
			}
		}
	}

	for name := range present {
		if _, ok := tracked[reconcile.Stem(name)]; !ok {
			report.Untracked = append(report.Untracked, name)
		}
	}
	sort.Strings(report.Untracked)

	return report, nil
}

func hashEntry(ctx context.Context, dest target.Target, name string) (string, error) {
	r, err := dest.Open(ctx, name)
	if err != nil {
		return "", err
	}
	defer r.Close()

	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
