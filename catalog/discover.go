package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
	"github.com/samber/lo"
)

// SignExtensions are the icon formats picked up by DiscoverSigns
var SignExtensions = []string{".png", ".jpg", ".jpeg", ".svg"}

// DiscoverSigns scans dir for icon files and returns one sign per file,
// sorted by file name. The key is the lower-cased stem with dashes turned
// into underscores; the label is the title-cased stem. info supplies
// optional descriptions by key. A missing directory yields no signs.
func DiscoverSigns(dir string, info map[string]string) ([]SignIcon, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.Debugf("sign directory %s does not exist, skipping", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sign directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isSignFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	signs := make([]SignIcon, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		key := api.KeyFromStem(stem)
		if seen[key] {
			logger.Warnf("ignoring %s: sign %q already discovered in %s", name, key, dir)
			continue
		}
		seen[key] = true
		label := api.PrettifyName(stem)
		sign := SignIcon{
			Key:   key,
			Label: label,
			Icon:  filepath.Join(dir, name),
			Info:  label,
		}
		if text, ok := info[key]; ok {
			sign.Info = text
		}
		signs = append(signs, sign)
	}

	logger.Debugf("discovered %d signs in %s", len(signs), dir)
	return signs, nil
}

func isSignFile(name string) bool {
	return lo.Contains(SignExtensions, strings.ToLower(filepath.Ext(name)))
}
