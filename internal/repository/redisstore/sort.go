package redisstore

import (
	"sort"

	"github.com/vytor/funzone/internal/models"
)

func sortRecords(records []models.ScoreRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].GameID != records[j].GameID {
			return records[i].GameID < records[j].GameID
		}
		return records[i].Key < records[j].Key
	})
}
