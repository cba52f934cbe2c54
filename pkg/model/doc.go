// Package model assembles the 3D mannequin from procedural primitives.
//
// A [Character] is a tree of [Node] values rooted at [Character.Root]. Leaf
// nodes carry a [mesh.Geometry] and a shared [Material]; group nodes only
// carry a [Transform]. The layout is fixed:
//
//	root
//	├── torso          cylinder, shirt
//	├── head-group     y = 0.8, scaled by head size
//	│   ├── head       catalog head shape, skin
//	│   ├── eye-left   box, black
//	│   ├── eye-right  box, black
//	│   └── hair-group
//	│       └── hair   catalog hairstyle, hair
//	├── leg-left/right cylinders, pants, scaled by height
//	├── shoe-left/right boxes under the legs, shoes
//	└── arm-left/right cylinders, skin
//
// # Mutation
//
// The builder performs the smallest change needed for each input:
// [Character.SetHairstyle] and [Character.SetHeadShape] release exactly the
// geometries they replace, [Character.UpdateScale] only touches transforms,
// and [Character.SetColor] changes one shared material so every part using
// that slot is recolored by a single call.
//
// Unknown ids, slots or out-of-range scale values return coded errors from
// [errors] and leave the model unchanged.
//
// # Resources
//
// Geometries are allocated from a [mesh.Pool]. [Character.Close] releases all
// of them; after Close, [mesh.Pool.Live] reports zero.
//
// A Character is owned by a single goroutine and is not safe for concurrent
// use.
//
// [errors]: github.com/matzehuels/mypoly/pkg/errors
package model
