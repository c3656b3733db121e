package config

import (
	"Storybrush-Backend/internal/utils"
	"Storybrush-Backend/pkg/filedb"
	"log"
)

func OpenStore() (*filedb.Store, error) {
	path := utils.GetConfig("STORE_PATH")
	if path == "" {
		path = "./data/store.json"
	}

	store, err := filedb.Open(path)
	if err != nil {
		log.Fatalf("Local store open failed: %v", err)
		return nil, err
	}
	return store, nil
}
