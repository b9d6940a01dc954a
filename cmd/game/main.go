package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/hollowdeep/crawler-engine/engine/ai"
	"github.com/hollowdeep/crawler-engine/engine/audio"
	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/input"
	"github.com/hollowdeep/crawler-engine/engine/maplib"
	"github.com/hollowdeep/crawler-engine/engine/pathfind"
	"github.com/hollowdeep/crawler-engine/engine/render"
	"github.com/hollowdeep/crawler-engine/engine/replay"
	"github.com/hollowdeep/crawler-engine/engine/systems"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TickRate     = 30.0
	PickRadius   = 1.2 // world tiles; generous for touch imprecision
)

// enemyDef is one bestiary entry for the demo
type enemyDef struct {
	hp       int
	speed    float64
	armor    core.ArmorKind
	move     core.MoveKind
	aggro    float64
	melee    float64
	damage   int
	dmgKind  core.DamageKind
	cooldown float64
	color    uint32
	shape    core.BodyShape
	radius   float64
}

var bestiary = map[string]enemyDef{
	"rat":      {hp: 18, speed: 3.4, armor: core.ArmorNone, move: core.MoveWalk, aggro: 5, melee: 0.9, damage: 4, dmgKind: core.DmgPierce, cooldown: 0.8, color: 0x9A7B5AFF, shape: core.ShapeCircle, radius: 0.22},
	"skeleton": {hp: 40, speed: 2.2, armor: core.ArmorBone, move: core.MoveWalk, aggro: 7, melee: 1.1, damage: 9, dmgKind: core.DmgSlash, cooldown: 1.2, color: 0xD8D2C0FF, shape: core.ShapeCircle, radius: 0.32},
	"brute":    {hp: 90, speed: 1.6, armor: core.ArmorPlate, move: core.MoveWalk, aggro: 6, melee: 1.3, damage: 16, dmgKind: core.DmgBlunt, cooldown: 1.8, color: 0x7A8B6AFF, shape: core.ShapeCircle, radius: 0.42},
	"wraith":   {hp: 30, speed: 2.8, armor: core.ArmorEthereal, move: core.MoveFly, aggro: 9, melee: 1.0, damage: 7, dmgKind: core.DmgArcane, cooldown: 1.0, color: 0x9FB8E8AA, shape: core.ShapeDiamond, radius: 0.34},
}

// Game implements ebiten.Game and wires the engine together
type Game struct {
	renderer *render.Renderer
	room     *maplib.Room
	gameLoop *core.GameLoop
	inputSt  *input.InputState
	actions  *input.Queue
	eventBus *core.EventBus
	sound    *audio.AudioManager
	hero     *core.Hero

	targeting *systems.TargetingSystem
	combat    *systems.CombatSystem
	movement  *systems.MovementSystem
	brains    *ai.AISystem
	fog       *maplib.FogGrid

	depth      int
	enemiesUp  int
	statusLine string

	capture  *input.Queue   // staging queue so actions can be recorded
	recorder *replay.Replay // non-nil when recording
	playback *replay.Replay // non-nil when replaying; device input ignored

	// Last movement axes pushed into the action stream; a new action is
	// recorded only when the axes change
	lastMoveX, lastMoveY float64
}

func NewGame() *Game {
	g := &Game{
		renderer: render.NewRenderer(ScreenWidth, ScreenHeight),
		gameLoop: core.NewGameLoop(TickRate),
		inputSt:  input.NewInputState(),
		actions:  input.NewQueue(),
		eventBus: core.NewEventBus(),
		sound:    audio.NewAudioManager(),
		depth:    1,
		capture:  input.NewQueue(),
	}
	g.enterRoom(generateDemoRoom(g.depth))
	g.wireSound()
	g.gameLoop.Play()
	return g
}

// enterRoom swaps the active room: fresh world, fresh systems, target slot
// cleared, enemies spawned from the room's spawn list
func (g *Game) enterRoom(room *maplib.Room) {
	g.room = room
	g.gameLoop.World = core.NewWorld(TickRate)
	w := g.gameLoop.World

	spawn, ok := room.HeroSpawn()
	if !ok {
		spawn = maplib.SpawnPoint{X: room.Width / 2, Y: room.Height / 2}
	}
	if g.hero == nil {
		g.hero = core.NewHero(float64(spawn.X)+0.1, float64(spawn.Y)+0.1)
	} else {
		g.hero.X = float64(spawn.X) + 0.1
		g.hero.Y = float64(spawn.Y) + 0.1
	}

	for _, sp := range room.EnemySpawns() {
		def, ok := bestiary[sp.Kind]
		if !ok {
			log.Printf("room %q: unknown enemy kind %q, skipped", room.Name, sp.Kind)
			continue
		}
		spawnEnemy(w, sp.Kind, def, float64(sp.X)+0.5, float64(sp.Y)+0.5)
	}

	navGrid := pathfind.NewNavGrid(room)
	g.fog = maplib.NewFogGrid(room.Width, room.Height)
	g.targeting = &systems.TargetingSystem{
		Hero:       g.hero,
		Camera:     g.renderer.Camera,
		Actions:    g.actions,
		EventBus:   g.eventBus,
		PickRadius: PickRadius,
	}
	g.combat = &systems.CombatSystem{Hero: g.hero, Targeting: g.targeting, EventBus: g.eventBus}
	g.movement = &systems.MovementSystem{Hero: g.hero, Room: room}
	g.brains = &ai.AISystem{Hero: g.hero, NavGrid: navGrid, EventBus: g.eventBus, Rand: rand.New(rand.NewSource(int64(room.Depth)))}

	w.AddSystem(&systems.VisionSystem{Hero: g.hero, NavGrid: navGrid, Fog: g.fog, Radius: 9})
	w.AddSystem(g.targeting)
	w.AddSystem(g.brains)
	w.AddSystem(g.movement)
	w.AddSystem(g.combat)
	w.AddSystem(&systems.ProjectileSystem{EventBus: g.eventBus})
	w.AddSystem(&systems.FlashSystem{})
	w.AddSystem(&systems.CorpseSystem{})

	g.targeting.Reset()
	g.eventBus.Emit(core.Event{Type: core.EvtRoomEntered})
	g.statusLine = fmt.Sprintf("Depth %d: %s", room.Depth, room.Name)
}

func spawnEnemy(w *core.World, kind string, def enemyDef, x, y float64) {
	id := w.Spawn()
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Health{Current: def.hp, Max: def.hp})
	w.Attach(id, &core.Movable{Speed: def.speed, MoveKind: def.move})
	w.Attach(id, &core.Hostile{
		Kind:        kind,
		Armor:       def.armor,
		AggroRange:  def.aggro,
		MeleeRange:  def.melee,
		MeleeDamage: def.damage,
		MeleeKind:   def.dmgKind,
		Cooldown:    def.cooldown,
	})
	w.Attach(id, &ai.Brain{State: ai.StateIdle, ThinkTimer: 0.5})
	w.Attach(id, &core.Sprite{Shape: def.shape, Radius: def.radius, Color: def.color, Visible: true, ZOrder: 2})
}

func (g *Game) wireSound() {
	g.eventBus.On(core.EvtTargetChanged, func(core.Event) { g.sound.Cue(audio.SndSelect) })
	g.eventBus.On(core.EvtAttackExecuted, func(core.Event) { g.sound.Cue(audio.SndSwing) })
	g.eventBus.On(core.EvtAttackBlocked, func(core.Event) { g.sound.Cue(audio.SndBlocked) })
	g.eventBus.On(core.EvtEnemyDied, func(core.Event) { g.sound.Cue(audio.SndEnemyDie) })
	g.eventBus.On(core.EvtHeroDied, func(core.Event) { g.gameLoop.State = core.StateGameOver })
}

func (g *Game) Update() error {
	g.inputSt.Update()

	if g.gameLoop.State == core.StateGameOver {
		return nil
	}

	// Every simulation input passes through the capture queue, so a
	// recorded stream holds the whole session
	if g.playback != nil {
		g.playback.FeedTick(g.gameLoop.CurrentTick(), g.capture)
	} else {
		g.inputSt.Collect(g.capture)
		if mx, my := g.inputSt.MoveAxis(); mx != g.lastMoveX || my != g.lastMoveY {
			g.capture.Push(input.Action{Kind: input.ActMoveAxis, X: mx, Y: my})
			g.lastMoveX, g.lastMoveY = mx, my
		}
		if g.inputSt.IsKeyJustPressed(ebiten.Key1) {
			g.capture.Push(input.Action{Kind: input.ActSwapWeapon, X: 1})
		}
		if g.inputSt.IsKeyJustPressed(ebiten.Key2) {
			g.capture.Push(input.Action{Kind: input.ActSwapWeapon, X: 2})
		}
	}
	for _, a := range g.capture.Drain() {
		if g.recorder != nil {
			if err := g.recorder.Record(g.gameLoop.CurrentTick(), a); err != nil {
				log.Printf("replay record: %v", err)
			}
		}
		switch a.Kind {
		case input.ActMoveAxis:
			g.hero.MoveX, g.hero.MoveY = a.X, a.Y
		case input.ActSwapWeapon:
			g.equipWeapon(int(a.X))
		default:
			// Targeting actions drain inside the simulation tick
			g.actions.Push(a)
		}
	}

	// Camera follows the hero; wheel zooms
	if g.inputSt.ScrollY != 0 {
		g.renderer.Camera.SetZoom(g.renderer.Camera.Zoom + g.inputSt.ScrollY*0.1)
	}
	hx, hy := g.hero.Center()
	g.renderer.Camera.CenterOn(hx, hy)
	g.sound.SetListenerPos(hx, hy)

	g.gameLoop.Update()
	g.eventBus.Dispatch()

	g.enemiesUp = len(systems.CollectCandidates(g.gameLoop.World))

	// Standing on the stairs with the room cleared descends
	if g.enemiesUp == 0 {
		if t := g.room.At(int(math.Floor(hx)), int(math.Floor(hy))); t != nil && t.Kind == maplib.TileStairsDown {
			g.depth++
			g.sound.Cue(audio.SndStairs)
			g.enterRoom(generateDemoRoom(g.depth))
		}
	}

	return nil
}

// equipWeapon switches the hero's kit by slot number
func (g *Game) equipWeapon(slot int) {
	switch slot {
	case 1:
		g.hero.Weapon = core.HeroWeapon{Name: "shortsword", Damage: 12, DmgKind: core.DmgSlash, Cooldown: 0.5}
		g.hero.AttackRangeSq = 2.25
	case 2:
		g.hero.Weapon = core.HeroWeapon{Name: "shortbow", Damage: 8, DmgKind: core.DmgPierce, Cooldown: 0.9, Ranged: true, ShotSpeed: 10}
		g.hero.AttackRangeSq = 36 // range 6 tiles
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{12, 10, 16, 255})
	g.renderer.DrawRoom(screen, g.room, g.fog)
	g.renderer.DrawEntities(screen, g.gameLoop.World, g.fog)
	g.renderer.DrawHero(screen, g.hero)

	if id, ok := g.targeting.CurrentTarget(); ok {
		if pos := g.gameLoop.World.Get(id, core.CompPosition); pos != nil {
			p := pos.(*core.Position)
			rng := g.targeting.Range()
			g.renderer.DrawTargetMarker(screen, p.X, p.Y, rng.InRange, rng.Distance)
		}
	}

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	targetLine := "Target: none"
	if id, ok := g.targeting.CurrentTarget(); ok {
		rng := g.targeting.Range()
		state := "IN RANGE"
		if !rng.InRange {
			state = fmt.Sprintf("too far (%.1f)", rng.Distance)
		}
		kind := "?"
		if hc := g.gameLoop.World.Get(id, core.CompHostile); hc != nil {
			kind = hc.(*core.Hostile).Kind
		}
		targetLine = fmt.Sprintf("Target: #%d %s (%s)", id, kind, state)
	}

	outcomeLine := ""
	if g.combat.HasOutcome() {
		switch o := g.combat.LastOutcome; o.Verdict {
		case systems.AttackExecuted:
			outcomeLine = fmt.Sprintf("Last attack: hit #%d", o.Target)
		case systems.AttackBlockedNoTarget:
			outcomeLine = "Last attack: no target"
		case systems.AttackBlockedOutOfRange:
			outcomeLine = fmt.Sprintf("Last attack: out of range (%.1f)", o.Distance)
		}
	}

	info := fmt.Sprintf(
		"%s | FPS: %.0f | Enemies: %d | HP: %d/%d | Weapon: %s\n"+
			"%s\n%s\n"+
			"[Tab] cycle  [Shift+Tab] back  [Q] nearest  [Click] pick  [Space] attack  [Esc] clear  [1/2] weapon",
		g.statusLine, ebiten.ActualFPS(), g.enemiesUp, g.hero.HP, g.hero.MaxHP, g.hero.Weapon.Name,
		targetLine, outcomeLine,
	)
	if g.gameLoop.State == core.StateGameOver {
		info = "YOU DIED\n" + info
	}
	ebitenutil.DebugPrint(screen, info)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// generateDemoRoom builds a small crypt: three chambers, corridors, a water
// channel and the stairs down, with enemies scaled by depth
func generateDemoRoom(depth int) *maplib.Room {
	r := maplib.NewRoom(fmt.Sprintf("Crypt Level %d", depth), 36, 24)
	r.Depth = depth

	r.Carve(2, 2, 12, 9)    // west chamber (hero start)
	r.Carve(18, 3, 33, 11)  // east chamber
	r.Carve(8, 14, 26, 21)  // south chamber
	r.CarveCorridor(12, 5, 18, 5)
	r.CarveCorridor(10, 9, 10, 14)
	r.CarveCorridor(25, 11, 25, 14)

	// Water channel through the east chamber; wraiths drift over it
	for y := 3; y <= 11; y++ {
		r.SetTile(28, y, maplib.TileWater)
	}
	r.SetTile(28, 7, maplib.TileDoor) // plank crossing

	r.SetTile(12, 5, maplib.TileDoor)
	r.SetTile(10, 13, maplib.TileRubble)
	r.SetTile(24, 20, maplib.TileStairsDown)

	r.Spawns = []maplib.SpawnPoint{
		{Kind: "hero", X: 4, Y: 4},
		{Kind: "rat", X: 9, Y: 7},
		{Kind: "rat", X: 20, Y: 5},
		{Kind: "skeleton", X: 22, Y: 9},
		{Kind: "skeleton", X: 14, Y: 17},
		{Kind: "wraith", X: 30, Y: 6},
		{Kind: "brute", X: 22, Y: 19},
	}
	if depth >= 2 {
		r.Spawns = append(r.Spawns,
			maplib.SpawnPoint{Kind: "wraith", X: 11, Y: 19},
			maplib.SpawnPoint{Kind: "skeleton", X: 31, Y: 9},
		)
	}
	if depth >= 3 {
		r.Spawns = append(r.Spawns, maplib.SpawnPoint{Kind: "brute", X: 19, Y: 16})
	}
	return r
}

func main() {
	recordPath := flag.String("record", "", "record the session's actions to this file")
	replayPath := flag.String("replay", "", "play back actions from this file instead of the mouse and keyboard")
	flag.Parse()

	g := NewGame()
	if *recordPath != "" {
		rec, err := replay.NewRecorder(*recordPath)
		if err != nil {
			log.Fatalf("open recorder: %v", err)
		}
		defer rec.Close()
		g.recorder = rec
	}
	if *replayPath != "" {
		rep, err := replay.Load(*replayPath)
		if err != nil {
			log.Fatalf("load replay: %v", err)
		}
		g.playback = rep
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Crawler Engine: Crypt Demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
