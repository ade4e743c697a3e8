package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/kk-code-lab/ephemlake/internal/cache"
	"github.com/kk-code-lab/ephemlake/internal/catalog"
	"github.com/kk-code-lab/ephemlake/internal/ephem"
)

// inspectReport is what -mode inspect prints.
type inspectReport struct {
	Path          string  `json:"path"`
	Kind          string  `json:"kind"`
	FormatVersion uint32  `json:"format_version"`
	Producer      string  `json:"producer"`
	Created       string  `json:"created,omitempty"`
	Segments      int     `json:"segments"`
	StartEpoch    float64 `json:"start_epoch"`
	EndEpoch      float64 `json:"end_epoch"`
	Checksum      string  `json:"checksum"`
	Cached        bool    `json:"cached"`
}

// runSeed writes a minimal known-valid dataset file, mainly for fuzz
// corpus seeding and smoke tests.
func runSeed(path string) error {
	data, err := ephem.EncodeFile(ephem.MinimalFile())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runVerify decodes the file and reports the typed outcome.
func runVerify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	file, err := ephem.DecodeFile(data)
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok kind=%s segments=%d\n", path, file.Kind, len(file.Segments))
	return nil
}

func runInspect(cfg fileConfig, path string, record, jsonOut bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	key := cache.Key(data)
	report := inspectReport{
		Path:     path,
		Checksum: hex.EncodeToString(key[:]),
	}

	var dc *cache.DiskCache
	if !cfg.Cache.Disabled && cfg.Cache.Dir != "" {
		if dc, err = cache.Open(cfg.Cache.Dir); err != nil {
			return err
		}
	}
	if dc != nil {
		if payload, ok, err := dc.Get(key); err != nil {
			return err
		} else if ok {
			report.Kind = payload.Kind
			report.FormatVersion = payload.FormatVersion
			report.Producer = payload.Producer
			report.Segments = payload.Segments
			report.StartEpoch = payload.StartEpoch
			report.EndEpoch = payload.EndEpoch
			report.Cached = true
		}
	}

	if !report.Cached {
		file, err := ephem.DecodeFile(data)
		if err != nil {
			return err
		}
		report.Kind = file.Kind.String()
		report.FormatVersion = file.Version
		report.Producer = file.Meta.Producer
		if file.Meta.Created != 0 {
			report.Created = time.Unix(int64(file.Meta.Created), 0).UTC().Format(time.RFC3339)
		}
		report.Segments = len(file.Segments)
		for i := range file.Segments {
			seg := &file.Segments[i]
			if i == 0 || seg.StartEpoch < report.StartEpoch {
				report.StartEpoch = seg.StartEpoch
			}
			if i == 0 || seg.EndEpoch > report.EndEpoch {
				report.EndEpoch = seg.EndEpoch
			}
		}
		if dc != nil {
			if err := dc.Put(key, &cache.Payload{
				Kind:          report.Kind,
				FormatVersion: report.FormatVersion,
				Producer:      report.Producer,
				Segments:      report.Segments,
				StartEpoch:    report.StartEpoch,
				EndEpoch:      report.EndEpoch,
			}); err != nil {
				return err
			}
		}
	}

	if record {
		if cfg.Catalog.Path == "" {
			return ErrCatalogRequired
		}
		store, err := catalog.Open(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if err := store.RecordFile(context.Background(), catalog.Entry{
			Path:          path,
			Kind:          report.Kind,
			FormatVersion: report.FormatVersion,
			Producer:      report.Producer,
			Segments:      report.Segments,
			Checksum:      report.Checksum,
		}); err != nil {
			return err
		}
	}

	if jsonOut {
		return writeJSON(report)
	}
	fmt.Printf("%s: kind=%s version=%d producer=%q segments=%d span=[%g, %g] cached=%v\n",
		report.Path, report.Kind, report.FormatVersion, report.Producer, report.Segments,
		report.StartEpoch, report.EndEpoch, report.Cached)
	return nil
}

func runCatalog(dbPath string, jsonOut bool) error {
	store, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rows, err := store.ListFiles(context.Background())
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(rows)
	}
	for _, r := range rows {
		fmt.Printf("%d\t%s\t%s\tsegments=%d\trecorded=%s\n", r.ID, r.Entry.Kind, r.Entry.Path, r.Entry.Segments, r.RecordedAt)
	}
	return nil
}
