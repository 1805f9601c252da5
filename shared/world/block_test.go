package world

import "testing"

func TestShowFace(t *testing.T) {
	cases := []struct {
		name     string
		self, nb BlockID
		want     bool
	}{
		{"contra ar desenha", BlockStone, BlockAir, true},
		{"mesmo tipo nunca desenha", BlockStone, BlockStone, false},
		{"agua contra agua nunca desenha", BlockWater, BlockWater, false},
		{"dois opacos diferentes nunca desenham", BlockStone, BlockDirt, false},
		{"opaco contra semi desenha", BlockStone, BlockGlass, true},
		{"semi contra opaco desenha", BlockWater, BlockStone, true},
		{"semis diferentes desenham", BlockWater, BlockGlass, true},
		{"folhas contra folhas nao desenham", BlockOakLeaves, BlockOakLeaves, false},
		{"agua contra ar desenha", BlockWater, BlockAir, true},
	}
	for _, c := range cases {
		if got := ShowFace(c.self, c.nb); got != c.want {
			t.Errorf("%s: ShowFace(%s,%s) = %v", c.name, c.self.Info().Name, c.nb.Info().Name, got)
		}
	}
}

func TestLightAttenuation(t *testing.T) {
	cases := []struct {
		id     BlockID
		att    uint8
		passes bool
	}{
		{BlockAir, 1, true},
		{BlockGlass, 2, true},
		{BlockWater, 2, true},
		{BlockOakLeaves, 2, true},
		{BlockStone, 0, false},
		{BlockBedrock, 0, false},
	}
	for _, c := range cases {
		att, passes := LightAttenuation(c.id)
		if att != c.att || passes != c.passes {
			t.Errorf("LightAttenuation(%s) = (%d,%v), esperado (%d,%v)",
				c.id.Info().Name, att, passes, c.att, c.passes)
		}
	}
}

func TestBlockTable(t *testing.T) {
	if BlockAir != 0 {
		t.Fatal("ar deve ser o id zero")
	}
	for id := BlockID(0); id < blockCount; id++ {
		info := id.Info()
		if id != BlockAir && info.Name == "" {
			t.Errorf("bloco %d sem nome", id)
		}
		if info.Opaque && info.SemiOpaque {
			t.Errorf("%s não pode ser opaco e semi-opaco ao mesmo tempo", info.Name)
		}
	}
	// Id fora da tabela degrada para ar.
	if BlockID(200).Info().Name != "air" {
		t.Fatal("id desconhecido deveria degradar para ar")
	}
}
