// roomgen generates dungeon room files for the game and the editor.
// Usage: roomgen -out rooms/ -depth 3 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/hollowdeep/crawler-engine/engine/maplib"
)

var enemyKinds = []string{"rat", "skeleton", "brute", "wraith"}

func main() {
	out := flag.String("out", "rooms", "output directory")
	depths := flag.Int("depth", 3, "number of dungeon levels to generate")
	seed := flag.Int64("seed", 1, "rng seed")
	width := flag.Int("width", 36, "room width in tiles")
	height := flag.Int("height", 24, "room height in tiles")
	flag.Parse()

	if err := os.MkdirAll(*out, 0755); err != nil {
		log.Fatal(err)
	}
	rng := rand.New(rand.NewSource(*seed))

	for d := 1; d <= *depths; d++ {
		room := generate(rng, d, *width, *height)
		path := filepath.Join(*out, fmt.Sprintf("crypt_%02d.room.json", d))
		if err := room.SaveJSON(path); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s (%d spawns)", path, len(room.Spawns))
	}
}

type chamber struct {
	x1, y1, x2, y2 int
}

func (c chamber) center() (int, int) {
	return (c.x1 + c.x2) / 2, (c.y1 + c.y2) / 2
}

// generate carves a handful of chambers, links them with corridors, drops
// hazards and stairs, and scatters enemies scaled by depth
func generate(rng *rand.Rand, depth, w, h int) *maplib.Room {
	r := maplib.NewRoom(fmt.Sprintf("Crypt Level %d", depth), w, h)
	r.Depth = depth
	r.Description = fmt.Sprintf("Generated crypt floor %d", depth)

	n := 3 + rng.Intn(2)
	var chambers []chamber
	for i := 0; i < n; i++ {
		cw := 5 + rng.Intn(8)
		ch := 4 + rng.Intn(6)
		cx := 1 + rng.Intn(w-cw-2)
		cy := 1 + rng.Intn(h-ch-2)
		c := chamber{cx, cy, cx + cw, cy + ch}
		r.Carve(c.x1, c.y1, c.x2, c.y2)
		chambers = append(chambers, c)
	}
	for i := 1; i < len(chambers); i++ {
		ax, ay := chambers[i-1].center()
		bx, by := chambers[i].center()
		r.CarveCorridor(ax, ay, bx, by)
	}

	// Hazards: a rubble patch and, on deeper floors, a water channel
	hx, hy := chambers[rng.Intn(len(chambers))].center()
	r.SetTile(hx, hy, maplib.TileRubble)
	if depth >= 2 {
		c := chambers[rng.Intn(len(chambers))]
		wx := c.x1 + rng.Intn(c.x2-c.x1+1)
		for y := c.y1; y <= c.y2; y++ {
			r.SetTile(wx, y, maplib.TileWater)
		}
		r.SetTile(wx, (c.y1+c.y2)/2, maplib.TileDoor)
	}

	// Hero starts in the first chamber, stairs leave from the last
	sx, sy := chambers[0].center()
	r.Spawns = append(r.Spawns, maplib.SpawnPoint{Kind: "hero", X: sx, Y: sy})
	lx, ly := chambers[len(chambers)-1].center()
	r.SetTile(lx, ly, maplib.TileStairsDown)
	if depth > 1 {
		r.SetTile(sx+1, sy, maplib.TileStairsUp)
	}

	// Enemies avoid the hero's chamber
	count := 4 + depth + rng.Intn(3)
	for i := 0; i < count; i++ {
		c := chambers[1+rng.Intn(len(chambers)-1)]
		ex := c.x1 + rng.Intn(c.x2-c.x1+1)
		ey := c.y1 + rng.Intn(c.y2-c.y1+1)
		if !r.IsWalkable(ex, ey) {
			continue
		}
		kind := enemyKinds[rng.Intn(len(enemyKinds))]
		if depth == 1 && kind == "brute" {
			kind = "rat" // keep the first floor gentle
		}
		r.Spawns = append(r.Spawns, maplib.SpawnPoint{Kind: kind, X: ex, Y: ey})
	}

	return r
}
