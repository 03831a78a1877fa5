// Package formats provides parsers for voxel model file formats.
//
// VOX is the MagicaVoxel scene format: voxel grids, palettes, materials
// and the transform/group/shape scene graph. ParseVOX fails only on
// structural errors; recoverable anomalies are collected in VOX.Warnings.
package formats
