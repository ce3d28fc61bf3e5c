package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/materia"
	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/storage"
)

// defaultFixture seeds a small library when no fixture file is given.
const defaultFixture = `
libraries:
  - name: Castle
    description: Keep interiors and walls
    materials:
      - filename: stone_wall_01.matxml
        shader_path: N:/Shaders/Environment/Stone.spx
        samplers:
          - {type: g_DiffuseTexture, path: textures/stone_wall_01_d.dds}
          - {type: g_BumpmapTexture, path: textures/stone_wall_01_n.dds}
          - {type: g_SpecularTexture, path: textures/stone_wall_01_s.dds}
        parameters:
          - {name: Roughness, type: float, value: 0.8}
          - {name: Tint, type: float4, value: [1, 0.95, 0.9, 1]}
          - {name: UseDetail, type: bool, value: true}
      - filename: stone_wall_02.matxml
        shader_path: N:/Shaders/Environment/Stone.spx
        samplers:
          - {type: g_DiffuseTexture, path: textures/stone_wall_02_d.dds}
          - {type: g_BumpmapTexture, path: textures/stone_wall_02_n.dds}
          - {type: g_SpecularTexture, path: textures/stone_wall_02_s.dds}
        parameters:
          - {name: Roughness, type: float, value: 0.75}
          - {name: Tint, type: float4, value: [1, 1, 0.9, 1]}
          - {name: UseDetail, type: bool, value: false}
      - filename: stone_floor_mossy.matxml
        shader_path: N:/Shaders/Environment/StoneBlend.spx
        samplers:
          - {type: g_DiffuseTexture, path: textures/stone_floor_d.dds}
          - {type: g_BumpmapTexture, path: textures/stone_floor_n.dds}
          - {type: SAT_Mask_1, path: textures/moss_mask.dds}
        parameters:
          - {name: Roughness, type: float, value: 0.9}
          - {name: BlendSharpness, type: float, value: 4}
      - filename: banner_cloth_red.matxml
        shader_path: N:/Shaders/Cloth/Fabric.spx
        samplers:
          - {type: g_DiffuseTexture, path: textures/banner_red_d.dds}
          - {type: g_AlphaTexture, path: textures/banner_a.dds}
        parameters:
          - {name: Sheen, type: float, value: 0.3}
          - {name: Wind, type: string, value: gentle}
      - filename: torch_flame.matbin
        shader_path: N:/Shaders/FX/Emissive.spx
        samplers:
          - {type: g_EmissiveTexture, path: textures/flame_e.dds}
        parameters:
          - {name: Intensity, type: float, value: 12}
`

var (
	dbPath      = flag.String("db", "./materials_db", "Path to the BadgerDB directory")
	fixturePath = flag.String("fixture", "", "YAML fixture to load (defaults to a built-in sample library)")
	batchSize   = flag.Int("batch", 50, "Number of materials written per transaction")
)

// seed writes every library of the fixture and its materials to the store,
// batchSize materials at a time. It returns the number of materials written.
func seed(ctx context.Context, store storage.MaterialStore, fixture *Fixture, batchSize int) (int, error) {
	if batchSize < 1 {
		batchSize = 1
	}

	total := 0
	for _, lf := range fixture.Libraries {
		libs, err := store.AddLibraries(ctx, &core.Library{
			Name:        lf.Name,
			Description: lf.Description,
			SourcePath:  lf.SourcePath,
		})
		if err != nil {
			return total, err
		}
		lib := libs[0]

		batch := make([]*core.Material, 0, batchSize)
		for m, err := range lf.materials(lib.Id) {
			if err != nil {
				return total, err
			}
			batch = append(batch, m)
			if len(batch) == batchSize {
				if _, err := store.AddMaterials(ctx, batch...); err != nil {
					return total, err
				}
				total += len(batch)
				batch = batch[:0]
			}
		}

		// Write any remaining materials
		if len(batch) > 0 {
			if _, err := store.AddMaterials(ctx, batch...); err != nil {
				return total, err
			}
			total += len(batch)
		}
		slog.Info("library seeded", "library", lib.Id, "name", lib.Name, "materials", len(lf.Materials))
	}
	return total, nil
}

func main() {
	flag.Parse()

	var (
		fixture *Fixture
		err     error
	)
	if *fixturePath != "" {
		fixture, err = loadFixture(*fixturePath)
	} else {
		fixture, err = parseFixture([]byte(defaultFixture))
	}
	if err != nil {
		slog.Error("failed to load fixture", "err", err)
		os.Exit(1)
	}

	db, err := materia.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	store, err := db.Store()
	if err != nil {
		panic(err)
	}

	n, err := seed(context.Background(), store, fixture, *batchSize)
	if err != nil {
		panic(err)
	}
	slog.Info("seeding complete", "materials", n, "path", *dbPath)
}
