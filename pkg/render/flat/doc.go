// Package flat renders a customization state as layered 2D vector art.
//
// [Render] is a pure function from a [state.State] to a [Scene]: for every
// category it looks up the selected option in the catalog and pairs its SVG
// fragment with the color of the matching slot. [RenderSVG] assembles a scene
// into a standalone SVG document with one named group per layer:
//
//	scene, err := flat.Render(cat, st)
//	if err != nil {
//	    return err
//	}
//	svg := flat.RenderSVG(scene, flat.WithSize(800, 1000))
//
// Both functions are deterministic. Rendering the same state twice yields
// byte-identical output.
//
// # Colors
//
// Faces are drawn in the skin color, eyes in the eye color and hair in the
// hair color. Mouths always use a fixed dark ink. A body fragment in the
// clothes color sits behind the head.
//
// Fragments reference their color as "currentColor". The document writer
// substitutes the literal hex value so the output also rasterizes with
// renderers that do not implement the CSS color property.
package flat
