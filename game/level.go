package game

import (
	"embed"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

//go:embed data/levels/*.json
var levelFS embed.FS

// Level configuration is opaque data to the engine: JSON documents describe
// waves, enemy kinds, formations and boss phases. They are read by path with
// gjson and shape-checked only; unknown tags fall back to defaults rather
// than failing the session.

type TriggerKind uint8

const (
	TriggerTime TriggerKind = iota
	TriggerKills
)

type Formation uint8

const (
	FormationColumn Formation = iota
	FormationLine
	FormationV
	FormationCircle
	FormationRandom
)

type WaveEnemy struct {
	Kind      string
	Count     int
	Formation Formation
	SpawnX    float64 // center x, 0..1 normalized
	SpawnY    float64 // spawn y in px, usually above the top edge
	Delay     int     // ticks between staggered spawns, 0 = immediate
}

type Wave struct {
	TriggerKind  TriggerKind
	TriggerValue int
	Enemies      []WaveEnemy
}

type BossPhase struct {
	HP           int
	Speed        float64
	Radius       int
	AI           AIKind
	Pattern      PatternKind
	PatternParam int32
	FireRate     int
	Minions      bool
}

type BossConfig struct {
	ID     string
	Name   string
	Phases []BossPhase
}

type Level struct {
	ID    string
	Name  string
	Waves []Wave
	Boss  *BossConfig
}

// LevelCount reports how many built-in levels are embedded.
func LevelCount() int {
	entries, err := levelFS.ReadDir("data/levels")
	if err != nil {
		return 0
	}
	return len(entries)
}

// LoadLevel parses the built-in level at index. Indexes follow the sorted
// file names, which is the order the lobby exposes.
func LoadLevel(index int) (*Level, error) {
	entries, err := levelFS.ReadDir("data/levels")
	if err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		names = append(names, ent.Name())
	}
	sort.Strings(names)
	if index < 0 || index >= len(names) {
		return nil, fmt.Errorf("level index %d out of range [0,%d)", index, len(names))
	}
	data, err := levelFS.ReadFile("data/levels/" + names[index])
	if err != nil {
		return nil, fmt.Errorf("read level %q: %w", names[index], err)
	}
	return ParseLevel(data)
}

// ParseLevel reads a level document.
func ParseLevel(data []byte) (*Level, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("level config is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	lvl := &Level{
		ID:   doc.Get("id").String(),
		Name: doc.Get("name").String(),
	}

	for _, wv := range doc.Get("waves").Array() {
		wave := Wave{
			TriggerValue: int(wv.Get("trigger.value").Int()),
		}
		if wv.Get("trigger.type").String() == "kills" {
			wave.TriggerKind = TriggerKills
		}
		for _, en := range wv.Get("enemies").Array() {
			we := WaveEnemy{
				Kind:      en.Get("type").String(),
				Count:     int(en.Get("count").Int()),
				Formation: parseFormation(en.Get("formation").String()),
				SpawnX:    0.5,
				SpawnY:    -30,
				Delay:     int(en.Get("delay").Int()),
			}
			if v := en.Get("spawnX"); v.Exists() {
				we.SpawnX = v.Float()
			}
			if v := en.Get("spawnY"); v.Exists() {
				we.SpawnY = v.Float()
			}
			wave.Enemies = append(wave.Enemies, we)
		}
		lvl.Waves = append(lvl.Waves, wave)
	}

	if boss := doc.Get("boss"); boss.Exists() {
		cfg := &BossConfig{
			ID:   boss.Get("id").String(),
			Name: boss.Get("name").String(),
		}
		for _, ph := range boss.Get("phases").Array() {
			phase := BossPhase{
				HP:       int(ph.Get("hp").Int()),
				Speed:    ph.Get("speed").Float(),
				Radius:   int(ph.Get("radius").Int()),
				AI:       parseAIKind(ph.Get("ai").String()),
				FireRate: int(ph.Get("fireRate").Int()),
				Minions:  len(ph.Get("minions").Array()) > 0,
			}
			phase.Pattern, phase.PatternParam = parsePattern(ph.Get("bulletPatterns.0").String())
			cfg.Phases = append(cfg.Phases, phase)
		}
		if len(cfg.Phases) > 0 {
			lvl.Boss = cfg
		}
	}

	return lvl, nil
}

func parseFormation(s string) Formation {
	switch s {
	case "line":
		return FormationLine
	case "v":
		return FormationV
	case "circle":
		return FormationCircle
	case "random":
		return FormationRandom
	default:
		return FormationColumn
	}
}

func parseAIKind(s string) AIKind {
	switch s {
	case "zigzag":
		return AIZigzag
	case "swoop":
		return AISwoop
	case "circle":
		return AICircle
	case "tracking":
		return AITracking
	case "boss_sweep":
		return AISweep
	default:
		return AILinear
	}
}

// parsePattern maps a config tag to a pattern kind plus its count parameter.
// boss_radial is a denser radial, not a distinct pattern.
func parsePattern(s string) (PatternKind, int32) {
	switch s {
	case "radial":
		return PatternRadial, 8
	case "boss_radial":
		return PatternRadial, 16
	case "spiral":
		return PatternSpiral, 0
	case "spread":
		return PatternSpread, 0
	case "boss_aimed_burst":
		return PatternAimedBurst, 0
	default:
		return PatternAimed, 0
	}
}

// enemyStats maps config enemy kinds to their spawn parameters.
type enemyStats struct {
	HP         int
	Speed      float64
	Radius     int
	AI         AIKind
	Pattern    PatternKind
	PatternN   int32
	FireRate   int
	HasPattern bool
}

var enemyKinds = map[string]enemyStats{
	"small":  {HP: 1, Speed: 1.5, Radius: 8, AI: AILinear},
	"medium": {HP: 3, Speed: 1, Radius: 12, AI: AILinear, Pattern: PatternAimed, FireRate: 90, HasPattern: true},
	"elite":  {HP: 8, Speed: 0.8, Radius: 16, AI: AICircle, Pattern: PatternRadial, PatternN: 8, FireRate: 120, HasPattern: true},
	"fast":   {HP: 1, Speed: 3, Radius: 6, AI: AIZigzag},
	"tank":   {HP: 15, Speed: 0.5, Radius: 20, AI: AILinear, Pattern: PatternSpread, FireRate: 60, HasPattern: true},
}

func statsFor(kind string) enemyStats {
	if st, ok := enemyKinds[kind]; ok {
		return st
	}
	return enemyKinds["small"]
}
