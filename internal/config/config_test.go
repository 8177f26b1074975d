package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8090" {
		t.Errorf("listen_addr = %q, want :8090", cfg.ListenAddr)
	}
	if cfg.CompanyColumn != "Company_Name" || cfg.PriceColumn != "Price" {
		t.Errorf("column defaults not applied: %+v", cfg)
	}
	if cfg.ChartWidth != 700 || cfg.ChartHeight != 400 {
		t.Errorf("chart size defaults not applied: %dx%d", cfg.ChartWidth, cfg.ChartHeight)
	}
	if cfg.PreviewRows != 25 {
		t.Errorf("preview_rows = %d, want 25", cfg.PreviewRows)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Global{
		RawPath:            "data/listings.csv",
		CleanedPath:        "data/listings_clean.csv",
		ListenAddr:         ":9001",
		CompanyColumn:      "Brand",
		YearColumn:         "ModelYear",
		PriceColumn:        "AskingPrice",
		KilometersColumn:   "Odometer",
		PowerColumn:        "Horsepower",
		FuelColumn:         "Fuel",
		TransmissionColumn: "Gearbox",
		LatitudeColumn:     "Lat",
		LongitudeColumn:    "Lon",
		ChartWidth:         900,
		ChartHeight:        500,
		PreviewRows:        10,
		ShutdownTimeoutSec: 5,
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := Save(&Global{ListenAddr: ":8090"}, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("config file is empty")
	}
}
