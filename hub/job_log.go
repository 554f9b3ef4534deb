package hub

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rowzip/rowzip/core"
)

func (h *Hub) storeJobLog() error {
	store := make(map[core.SourceID][]*core.Job)

	for sourceID := range h.lookupSource {
		jobs, err := h.SourceGetJobs(sourceID)
		if err != nil || len(jobs) < 1 {
			continue
		}
		store[sourceID] = jobs
	}

	b, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	file, err := os.Create(h.jobLogPath)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	_, err = file.Write(b)
	if err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}

	return nil
}

func (h *Hub) restoreJobLog() error {
	file, err := os.Open(h.jobLogPath)
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)

	var store map[core.SourceID][]*core.Job

	err = decoder.Decode(&store)
	if err != nil {
		return fmt.Errorf("decoder.Decode: %w", err)
	}

	for sourceID, jobs := range store {
		jobIDs := make([]core.JobID, len(jobs))

		// fill job lookup
		for i, j := range jobs {
			h.lookupJob[j.GetID()] = j
			jobIDs[i] = j.GetID()
		}

		// add to source-job lookup
		h.lookupSourceJob[sourceID] = append(h.lookupSourceJob[sourceID], jobIDs...)
	}

	return nil
}
