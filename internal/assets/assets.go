// Package assets loads the text-art sprites the game draws with.
//
// A sprite file is plain UTF-8 text, one raster row per line. Lines that
// start with '#' are comments, except the "#tile" directive which makes the
// sprite repeat instead of stretch. Spaces are transparent.
package assets

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Sprite file names looked up in an asset filesystem.
const (
	PlayerFile   = "whale.txt"
	ObstacleFile = "obstacle.txt"
)

//go:embed sprites/*.txt
var embedded embed.FS

// ErrEmptySprite is returned for a sprite without any visible cell.
var ErrEmptySprite = errors.New("assets: sprite has no visible cells")

// Sprite is a rectangular rune raster.
type Sprite struct {
	Name string
	Rows [][]rune // Padded with spaces to a common width
	Tile bool     // Repeat rather than stretch when drawn
}

// Width returns the raster width in cells.
func (s Sprite) Width() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// Height returns the raster height in cells.
func (s Sprite) Height() int {
	return len(s.Rows)
}

// Set is everything the game needs before a run may start.
type Set struct {
	Player   Sprite
	Obstacle Sprite
}

// Embedded returns the built-in sprites.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "sprites")
	if err != nil {
		panic(err) // The embed pattern guarantees the directory exists
	}
	return sub
}

// Dir returns the sprites in a directory on disk.
func Dir(path string) fs.FS {
	return os.DirFS(path)
}

// Load reads both sprites from fsys.
func Load(fsys fs.FS) (Set, error) {
	player, err := loadSprite(fsys, PlayerFile)
	if err != nil {
		return Set{}, err
	}
	obstacle, err := loadSprite(fsys, ObstacleFile)
	if err != nil {
		return Set{}, err
	}
	return Set{Player: player, Obstacle: obstacle}, nil
}

func loadSprite(fsys fs.FS, name string) (Sprite, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Sprite{}, fmt.Errorf("assets: cannot read %s: %w", name, err)
	}
	s, err := Parse(name, data)
	if err != nil {
		return Sprite{}, fmt.Errorf("assets: %s: %w", name, err)
	}
	return s, nil
}

// Parse decodes a sprite file.
func Parse(name string, data []byte) (Sprite, error) {
	s := Sprite{Name: name}

	var rows [][]rune
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "#tile" {
				s.Tile = true
			}
			continue
		}
		rows = append(rows, []rune(line))
	}
	if err := sc.Err(); err != nil {
		return Sprite{}, err
	}

	// Trailing blank lines are not part of the raster
	for len(rows) > 0 && strings.TrimSpace(string(rows[len(rows)-1])) == "" {
		rows = rows[:len(rows)-1]
	}

	width, visible := 0, false
	for _, r := range rows {
		width = max(width, len(r))
		if strings.TrimSpace(string(r)) != "" {
			visible = true
		}
	}
	if !visible {
		return Sprite{}, ErrEmptySprite
	}

	for i, r := range rows {
		for len(r) < width {
			r = append(r, ' ')
		}
		rows[i] = r
	}
	s.Rows = rows
	return s, nil
}
