package stores

import (
	"fmt"

	"github.com/colonyops/touchgate/internal/core/logging"
	"github.com/colonyops/touchgate/internal/data/db"
)

// OpenOutcomes opens the journal database in dataDir. A corrupted file is
// moved aside and replaced with an empty database.
func OpenOutcomes(dataDir string) (*OutcomeStore, func() error, error) {
	database, err := db.Open(dataDir, db.DefaultOpenOptions())
	if err != nil && IsCorruptionError(err) {
		backup, rerr := RecoverFromCorruption(dataDir)
		if rerr != nil {
			return nil, nil, fmt.Errorf("recover journal: %w", rerr)
		}
		log := logging.Component("journal")
		log.Warn().Str("backup", backup).Msg("journal database was corrupt, starting fresh")
		database, err = db.Open(dataDir, db.DefaultOpenOptions())
	}
	if err != nil {
		return nil, nil, err
	}
	return NewOutcomeStore(database), database.Close, nil
}
