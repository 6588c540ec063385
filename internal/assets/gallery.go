package assets

import (
	"os"
	"path/filepath"

	"tp53explorer/internal/errors"
)

// Figure is one of the precomputed analysis images shown on the overview
// page. Every figure is independently optional: a missing file degrades to a
// rendered warning, never a failure.
type Figure struct {
	Name    string // filename under the images directory, also the URL key
	Title   string
	Caption string
	Missing string // warning shown when the file is absent
}

// KnownFigures are the images the upstream pipeline produces, in display order
var KnownFigures = []Figure{
	{
		Name:    "TP53_tree.png",
		Title:   "Phylogenetic Tree",
		Caption: "Figure 1. Phylogenetic tree of TP53 and retrogenes.",
		Missing: "Tree image not found. Put 'TP53_tree.png' in the images folder.",
	},
	{
		Name:    "TP53_MSA_logo.png",
		Title:   "MSA Conservation Logo",
		Caption: "Figure 2. TP53 multiple sequence alignment logo.",
		Missing: "Logo image not found. Put 'TP53_MSA_logo.png' in the images folder.",
	},
	{
		Name:    "identity_barplot.png",
		Title:   "Identity to Human TP53",
		Caption: "Figure 3. Top TP53/RTG sequences by % identity to human TP53.",
		Missing: "Barplot image not found. Put 'identity_barplot.png' in the images folder.",
	},
}

// FigureStatus is a probed figure: the static metadata plus whether the file
// currently exists on disk
type FigureStatus struct {
	Figure
	Present bool
}

// Gallery resolves figure files under a local images directory
type Gallery struct {
	imagesDir string
}

// NewGallery creates a gallery rooted at the given images directory
func NewGallery(imagesDir string) *Gallery {
	return &Gallery{imagesDir: imagesDir}
}

// Exists checks whether a figure file exists on disk
func (g *Gallery) Exists(name string) bool {
	info, err := os.Stat(filepath.Join(g.imagesDir, name))
	return err == nil && !info.IsDir()
}

// Probe stats every known figure and reports presence per figure
func (g *Gallery) Probe() []FigureStatus {
	statuses := make([]FigureStatus, 0, len(KnownFigures))
	for _, fig := range KnownFigures {
		statuses = append(statuses, FigureStatus{
			Figure:  fig,
			Present: g.Exists(fig.Name),
		})
	}
	return statuses
}

// Path returns the on-disk path for a known figure name. Unknown names are
// rejected so the handler can never be walked outside the images directory.
func (g *Gallery) Path(name string) (string, error) {
	for _, fig := range KnownFigures {
		if fig.Name == name {
			path := filepath.Join(g.imagesDir, name)
			if !g.Exists(name) {
				return "", errors.NotFound("figure file " + name)
			}
			return path, nil
		}
	}
	return "", errors.InvalidInput("unknown figure: " + name)
}
