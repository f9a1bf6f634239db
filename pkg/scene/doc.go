// Package scene describes relative panels as documents and solves them.
//
// # Overview
//
// A [Scene] is a panel size plus a list of [Element] declarations. Each
// declaration names a box, gives it an intrinsic size and lists its relative
// constraints by sibling name, using the same vocabulary as package relpanel:
//
//	width = 400
//	height = 300
//
//	[[element]]
//	name = "blue"
//	width = 150
//	height = 100
//	align_right_with_panel = true
//
//	[[element]]
//	name = "red"
//	width = 150
//	height = 100
//	left_of = "blue"
//
// Scenes are read from TOML or JSON with [ReadFile], [ReadTOML] or
// [ReadJSON]. Unknown keys are rejected.
//
// # Solving
//
// [Solve] validates a scene, turns every declaration into a [Box], runs the
// measure and arrange passes and returns a [Result]:
//
//	res, err := scene.Solve(s)
//	if err != nil {
//	    return err // validation, reference or cycle error
//	}
//	for _, b := range res.Blocks {
//	    fmt.Println(b.ID, b.Rect())
//	}
//
// A zero panel width or height means "size to content": the axis is measured
// unbounded and arranged at the desired size. A zero element width or height
// means the box fills whatever its measure rect offers.
//
// Use [Build] instead of Solve to keep the [Panel] around, for example to
// arrange the same measured scene at several sizes.
//
// # Results
//
// [Result] is the serialization format shared by the renderers, the layout
// cache and the layout store. It is written with [WriteResultFile] and read
// back with [ReadResultFile].
package scene
