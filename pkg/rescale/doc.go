// Package rescale fits a whole layout to a new canvas size.
//
// A rescale is a two-step action. [Preview] (or [ComputeScale] on its own)
// derives per-axis factors from the bounding box of every widget and one of
// four [Mode] values, and reports the constraint violations the new scale
// would cause. [Apply] then produces scaled copies of the widgets, optionally
// clamping violating attributes up to their device floor:
//
//	plan, err := rescale.Preview(ws, 702, 936, rescale.Proportional, dev)
//	if err != nil {
//	    return err
//	}
//	for _, w := range plan.Warnings {
//	    fmt.Println(w)
//	}
//	scaled, err := rescale.Apply(ws, plan.Scale, true, dev)
//
// Both steps are pure; the input slice is never modified.
package rescale
