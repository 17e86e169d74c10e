package fixtures

import (
	"encoding/json"

	"github.com/yamaru/pokesearch/internal/types"
)

// SampleBulbasaur creates the first sample creature
func SampleBulbasaur() *types.Creature {
	return &types.Creature{
		ID:    1,
		Name:  types.Name{English: "Bulbasaur", Japanese: "フシギダネ", Chinese: "妙蛙种子", French: "Bulbizarre"},
		Types: []string{"Grass", "Poison"},
		Base:  types.BaseStats{HP: 45, Attack: 49, Defense: 49, SpAttack: 65, SpDefense: 65, Speed: 45},
	}
}

// SampleIvysaur creates the second sample creature
func SampleIvysaur() *types.Creature {
	return &types.Creature{
		ID:    2,
		Name:  types.Name{English: "Ivysaur", French: "Herbizarre"},
		Types: []string{"Grass", "Poison"},
		Base:  types.BaseStats{HP: 60, Attack: 62, Defense: 63, SpAttack: 80, SpDefense: 80, Speed: 60},
	}
}

// SampleVenusaur creates the third sample creature
func SampleVenusaur() *types.Creature {
	return &types.Creature{
		ID:    3,
		Name:  types.Name{English: "Venusaur", French: "Florizarre"},
		Types: []string{"Grass", "Poison"},
		Base:  types.BaseStats{HP: 80, Attack: 82, Defense: 83, SpAttack: 100, SpDefense: 100, Speed: 80},
	}
}

// SampleCharmander creates a Fire type sample creature
func SampleCharmander() *types.Creature {
	return &types.Creature{
		ID:    4,
		Name:  types.Name{English: "Charmander", French: "Salamèche"},
		Types: []string{"Fire"},
		Base:  types.BaseStats{HP: 39, Attack: 52, Defense: 43, SpAttack: 60, SpDefense: 50, Speed: 65},
	}
}

// SamplePikachu creates an Electric type sample creature
func SamplePikachu() *types.Creature {
	return &types.Creature{
		ID:    25,
		Name:  types.Name{English: "Pikachu", French: "Pikachu"},
		Types: []string{"Electric"},
		Base:  types.BaseStats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90},
	}
}

// SampleDataset returns the sample creatures in dataset order
func SampleDataset() []*types.Creature {
	return []*types.Creature{
		SampleBulbasaur(),
		SampleIvysaur(),
		SampleVenusaur(),
		SampleCharmander(),
		SamplePikachu(),
	}
}

// WireRecord converts a creature into the pokemon.json element shape
func WireRecord(c *types.Creature) map[string]any {
	base := make(map[string]any)
	for _, k := range types.StatKeys() {
		base[k.String()] = c.Base.Value(k)
	}
	return map[string]any{
		"id":   c.ID,
		"name": c.Name,
		"type": c.Types,
		"base": base,
	}
}

// DatasetJSON encodes creatures as a pokemon.json document
func DatasetJSON(creatures []*types.Creature) []byte {
	elements := make([]any, 0, len(creatures))
	for _, c := range creatures {
		elements = append(elements, WireRecord(c))
	}
	data, err := json.Marshal(elements)
	if err != nil {
		panic(err)
	}
	return data
}

// MalformedDatasetJSON returns a document mixing valid and malformed records.
// Only Bulbasaur and Pikachu are valid and unique.
func MalformedDatasetJSON() []byte {
	missingStat := WireRecord(SampleIvysaur())
	delete(missingStat["base"].(map[string]any), "Sp. Defense")

	noTypes := WireRecord(SampleVenusaur())
	noTypes["type"] = []string{}

	floatStat := WireRecord(SampleCharmander())
	floatStat["base"].(map[string]any)["Speed"] = 65.5

	duplicate := WireRecord(SampleBulbasaur())
	duplicate["name"] = types.Name{English: "Impostor"}

	elements := []any{
		WireRecord(SampleBulbasaur()),
		missingStat,
		noTypes,
		"not an object",
		floatStat,
		duplicate,
		WireRecord(SamplePikachu()),
	}
	data, err := json.Marshal(elements)
	if err != nil {
		panic(err)
	}
	return data
}
