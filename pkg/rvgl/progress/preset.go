package progress

import (
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// StockLevels are the tracks that ship with the game.
var StockLevels = []string{
	"garden1",
	"market1",
	"market2",
	"muse1",
	"muse2",
	"nhood1",
	"nhood2",
	"roof",
	"ship1",
	"ship2",
	"toy2",
	"toylite",
	"wild_west1",
	"wild_west2",
}

const (
	StockStunt      = "stunts"
	StockStuntStars = 20
)

// LoadStockPreset replaces the entries with every stock level, nothing
// unlocked, plus the stock stunt arena. The profile name is kept.
func (s *Session) LoadStockPreset() {
	s.clearEntries()
	for _, name := range StockLevels {
		s.levels.put(name, &LevelEntry{Name: name, InnerName: name})
	}
	s.stunts.put(StockStunt, &StuntEntry{Name: StockStunt, InnerName: StockStunt, TotalStars: StockStuntStars})
	s.selection = Selection{Kind: savefile.KindLevel, Name: StockLevels[0]}

	s.logger.Debug("📋 Loaded stock preset", "levels", len(StockLevels))
}
