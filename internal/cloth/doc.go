// Package cloth provides the particle-constraint physics engine behind the
// cloth simulation.
//
// A [Mesh] owns a slice of [Particle] values and a slice of [Constraint]
// values. Constraints refer to particles by index, so the mesh can be copied
// and inspected by value:
//
//   - [Particle]: point mass integrated with damped Verlet
//   - [Constraint]: distance relation relaxed toward its rest length
//   - [Mesh]: relaxation passes, eviction of broken constraints, integration
//   - [NewGrid]: rectangular cloth with a locked top row
//
// # Frame Order
//
// One frame of the engine is:
//
//	torn := mesh.Relax(params.Iterations)
//	mesh.Evict()
//	mesh.Integrate(t)
//
// More relaxation passes give a stiffer, less elastic cloth.
//
// # Thread Safety
//
// A Mesh is NOT safe for concurrent use. Relaxation assumes a sequential
// read-modify-write of shared particles within one pass.
package cloth
