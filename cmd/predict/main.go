// Command predict scores one request against the model artifacts without starting the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"homeprice/config"
	"homeprice/ml"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	location := flag.String("location", "", "location name")
	totalSqft := flag.Float64("total_sqft", 0, "total area in square feet")
	bhk := flag.Int("bhk", 0, "number of bedrooms")
	bath := flag.Int("bath", 0, "number of bathrooms")
	listLocations := flag.Bool("locations", false, "print the known locations and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	store, err := ml.LoadArtifacts(cfg.Artifacts.ModelType, cfg.Artifacts.ModelPath, cfg.Artifacts.ColumnsPath)
	if err != nil {
		log.Fatalf("failed to load artifacts: %v", err)
	}

	if *listLocations {
		names, err := store.LocationNames()
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	if *totalSqft <= 0 || *bhk <= 0 || *bath <= 0 || *location == "" {
		log.Fatal("location, total_sqft, bhk and bath are required and must be positive")
	}

	known, err := store.HasLocation(*location)
	if err != nil {
		log.Fatal(err)
	}
	if !known {
		log.Printf("unknown location %q, estimating without location signal", *location)
	}

	price, err := store.EstimatePrice(*location, *totalSqft, *bhk, *bath)
	if err != nil {
		log.Fatalf("failed to estimate price: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]interface{}{
		"estimated_price": price,
		"location":        *location,
		"total_sqft":      *totalSqft,
		"bhk":             *bhk,
		"bath":            *bath,
	})
}
