package types

import (
	"fmt"
	"strings"
)

// StatKey identifies one of the six base stats
type StatKey uint8

const (
	// Canonical display order, not alphabetical
	StatHP StatKey = iota
	StatAttack
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed

	statCount
)

var statNames = [statCount]string{
	StatHP:        "HP",
	StatAttack:    "Attack",
	StatDefense:   "Defense",
	StatSpAttack:  "Sp. Attack",
	StatSpDefense: "Sp. Defense",
	StatSpeed:     "Speed",
}

// StatKeys returns all stat keys in canonical order
func StatKeys() []StatKey {
	keys := make([]StatKey, 0, statCount)
	for k := StatHP; k < statCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// String returns the dataset key name of the stat
func (k StatKey) String() string {
	if k < statCount {
		return statNames[k]
	}
	return fmt.Sprintf("STAT_%d", uint8(k))
}

// ParseStatKey maps a dataset key name to its StatKey
func ParseStatKey(name string) (StatKey, bool) {
	for k, n := range statNames {
		if n == name {
			return StatKey(k), true
		}
	}
	return 0, false
}

// BaseStats holds the six base stat values
type BaseStats struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// Value returns the value of a single stat
func (b BaseStats) Value(k StatKey) int {
	switch k {
	case StatHP:
		return b.HP
	case StatAttack:
		return b.Attack
	case StatDefense:
		return b.Defense
	case StatSpAttack:
		return b.SpAttack
	case StatSpDefense:
		return b.SpDefense
	case StatSpeed:
		return b.Speed
	default:
		return 0
	}
}

// Set assigns a single stat
func (b *BaseStats) Set(k StatKey, v int) {
	switch k {
	case StatHP:
		b.HP = v
	case StatAttack:
		b.Attack = v
	case StatDefense:
		b.Defense = v
	case StatSpAttack:
		b.SpAttack = v
	case StatSpDefense:
		b.SpDefense = v
	case StatSpeed:
		b.Speed = v
	}
}

// Total returns the sum of all six stats
func (b BaseStats) Total() int {
	return b.HP + b.Attack + b.Defense + b.SpAttack + b.SpDefense + b.Speed
}

// Name holds the localized names of a creature
type Name struct {
	English  string `json:"english"`
	Japanese string `json:"japanese,omitempty"`
	Chinese  string `json:"chinese,omitempty"`
	French   string `json:"french,omitempty"`
}

// Creature represents a single dataset entry
type Creature struct {
	ID    int
	Name  Name
	Types []string // display order
	Base  BaseStats
}

// DisplayName returns the name used for search and display
func (c *Creature) DisplayName() string {
	return c.Name.English
}

// TypeLabel returns the type tags separated by spaces
func (c *Creature) TypeLabel() string {
	return strings.Join(c.Types, " ")
}

// Validate checks the record-level invariants
func (c *Creature) Validate() error {
	if c.Name.English == "" {
		return fmt.Errorf("creature %d: empty name", c.ID)
	}
	if len(c.Types) == 0 {
		return fmt.Errorf("creature %d: empty type list", c.ID)
	}
	for i, t := range c.Types {
		if t == "" {
			return fmt.Errorf("creature %d: empty type at index %d", c.ID, i)
		}
	}
	for _, k := range StatKeys() {
		if v := c.Base.Value(k); v < 0 {
			return fmt.Errorf("creature %d: negative %s: %d", c.ID, k, v)
		}
	}
	return nil
}
