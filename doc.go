// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bcres reads, and partially rewrites, the CGFX container format
// used to package 3D graphics assets (models and textures) for the
// Nintendo 3DS. A container is a single file holding a tree of named,
// typed dictionaries: models (meshes, shapes, vertex buffers, materials,
// skeletons) and textures (swizzled image blobs in console-native pixel
// formats).
//
//	Data                       Holds
//	------                    ------------------
//	Container                header + 16 dictionaries
//	Dict[Model]               named, skinned or rigid meshes
//	Dict[Texture]             named 2D or cube pixel data
//
// Nearly every offset in the format is relative to the file position at
// which it was read, and sections are written with forward-patched
// placeholders. Package bcres materializes the whole file into an object
// graph on Parse and (for the texture-only subset) rewrites it byte
// identically on Serialize.
//
// Package bcres is provided as part of the ctr-bcres toolset for editing
// 3DS graphics archives.
package bcres

// Design Notes:
// FUTURE: write support for models, skeletons and materials.
// FUTURE: Cube texture writing.
