package main

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

// exportDevices writes the current canonical list to a timestamped JSON
// file in the working directory and returns the filename.
func exportDevices(store *DeviceStore) (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("airscope_devices_%s.json", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(store.Devices()); err != nil {
		return "", err
	}
	return filename, nil
}
