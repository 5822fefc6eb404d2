package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/nftescrow/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	tmtypes "github.com/tendermint/tendermint/types"
	tmtime "github.com/tendermint/tendermint/types/time"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisFile returns the location of the genesis file inside of the home
// directory.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the app_state generated by gen into the genesis file found
// in the home directory. A genesis file with a random chain id is created if
// none exists yet. An already present app_state is never overwritten.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := GenesisFile(home)
	doc, err := loadOrCreateGenesis(genFile, logger)
	if err != nil {
		return err
	}
	if len(doc.AppState) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "app_state already present in %s", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "cannot generate app state")
	}
	doc.AppState = options
	if err := doc.SaveAs(genFile); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	logger.Info("Genesis app state written", "path", genFile, "chain_id", doc.ChainID)
	return nil
}

func loadOrCreateGenesis(genFile string, logger log.Logger) (*tmtypes.GenesisDoc, error) {
	if fileExists(genFile) {
		doc, err := tmtypes.GenesisDocFromFile(genFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		logger.Info("Found genesis file", "path", genFile)
		return doc, nil
	}

	if err := os.MkdirAll(filepath.Dir(genFile), 0755); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	doc := &tmtypes.GenesisDoc{
		ChainID:     fmt.Sprintf("escrow-%v", cmn.RandStr(6)),
		GenesisTime: tmtime.Now(),
	}
	logger.Info("Generated genesis file", "path", genFile)
	return doc, nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
