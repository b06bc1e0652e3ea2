// Package scene defines the scene graph for kerf.
// A scene is an immutable DAG of shapes, transforms and groups produced by
// script evaluation. Flatten walks it and places every shape in world
// coordinates.
package scene
