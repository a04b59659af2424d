// Package physics is the optional spring and ripple simulation that perturbs
// a glass panel's displacement field while it is dragged and while it settles.
//
// A Sim walks through three phases:
//
//	Idle -> Dragging -> Settling -> Idle
//
// Dragging starts with Begin, receives pointer deltas through Drag and ends
// with Release. Step integrates one frame and reports whether the simulation
// still needs frames; Perturb turns the current state into additive
// displacement on top of a fragment's output.
//
// Velocities are in panel pixels per second. Pointers, ripple origins and
// trail points use normalized panel coordinates, like field.Input.Mouse.
package physics
