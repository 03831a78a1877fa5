// vox2obj is a CLI utility that converts MagicaVoxel .vox models to meshes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Faultbox/vox2obj/internal/config"
	"github.com/Faultbox/vox2obj/internal/export"
	"github.com/Faultbox/vox2obj/internal/logger"
	"github.com/Faultbox/vox2obj/internal/mesher"
	"github.com/Faultbox/vox2obj/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "convert", "c":
		err = cmdConvert(args, os.Stdout)
	case "info":
		err = cmdInfo(args, os.Stdout)
	case "dump":
		err = cmdDump(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `vox2obj - MagicaVoxel .vox to mesh converter

Usage:
  vox2obj <command> [options]

Commands:
  convert [options] <in.vox> [output]  Convert one voxel grid (default output.obj)
  info [options] <in.vox>              Show scene and mesh statistics
  dump <in.vox>                        Dump the decoded scene
  config [options] [file]              Save the effective config (default: user config dir)
  help                                 Show this help

Convert options:
  -format obj|glb     Output format
  -model N            Index of the voxel grid to export
  -no-normals         Omit vertex normals
  -mtl                Write an MTL material library next to the OBJ
  -compress gzip|zstd Compress OBJ output
  -config FILE        Config file (default ./vox2obj.yaml)
  -debug              Enable debug logging

Examples:
  vox2obj convert chr_knight.vox knight.obj
  vox2obj convert -format glb -model 1 scene.vox scene.glb
  vox2obj convert -mtl -compress zstd monument.vox
  vox2obj info chr_knight.vox`)
}

// setup parses the flags shared by the commands, loads the config and
// initializes logging.
func setup(name string, args []string) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := config.NewFlags()
	flags.Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, fs, nil
}

// loadScene decodes a .vox file and logs its recoverable anomalies.
func loadScene(path string) (*formats.VOX, error) {
	vox, err := formats.ParseVOXFile(path)
	if err != nil {
		return nil, err
	}
	for _, w := range vox.Warnings {
		logger.Warn("decoder warning", zap.String("file", path), zap.String("warning", w))
	}
	logger.Debug("decoded scene",
		zap.String("file", path),
		zap.Int32("version", vox.Version),
		zap.Int("models", len(vox.Models)),
		zap.Int("voxels", vox.GetTotalVoxelCount()),
		zap.Int("nodes", len(vox.Nodes())))
	return vox, nil
}

// defaultOutput returns the output path used when none is given.
func defaultOutput(format string) string {
	return "output." + format
}

func cmdConvert(args []string, stdout io.Writer) error {
	cfg, fs, err := setup("convert", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: vox2obj convert [options] <in.vox> [output]")
	}

	input := fs.Arg(0)
	output := defaultOutput(cfg.Export.Format)
	if fs.NArg() > 1 {
		output = fs.Arg(1)
	}

	vox, err := loadScene(input)
	if err != nil {
		return err
	}
	if cfg.Export.Model >= len(vox.Models) {
		return fmt.Errorf("model %d out of range: %s has %d models", cfg.Export.Model, input, len(vox.Models))
	}

	model := vox.Models[cfg.Export.Model]
	if b, ok := mesher.ModelBounds(model); ok {
		logger.Debug("bounding box",
			zap.Uint8s("min", b.Min[:]),
			zap.Uint8s("max", b.Max[:]))
	}

	group := mesher.Polygonize(model)
	if !cfg.Export.Normals {
		group.StripNormals()
	}
	logger.Info("mesh built",
		zap.Int("model", cfg.Export.Model),
		zap.Int("voxels", len(model.Voxels)),
		zap.Int("materials", len(group)),
		zap.Int("faces", group.FaceCount()),
		zap.Int("vertices", group.VertexCount()))

	var written []string
	switch cfg.Export.Format {
	case "glb":
		if cfg.Export.Compression != "" && cfg.Export.Compression != "none" {
			logger.Warn("compression is ignored for GLB output", zap.String("compression", cfg.Export.Compression))
		}
		if err := export.WriteGLB(output, group, vox.Palette()); err != nil {
			return err
		}
		written = []string{output}
	default:
		comp, err := export.ParseCompression(cfg.Export.Compression)
		if err != nil {
			return err
		}
		var palette *formats.VOXPalette
		if cfg.Export.Materials {
			palette = vox.Palette()
		}
		written, err = export.SaveOBJ(export.WithCompression(output, comp), group, palette)
		if err != nil {
			return err
		}
	}

	for _, path := range written {
		fmt.Fprintf(stdout, "Wrote: %s\n", path)
	}
	fmt.Fprintf(stdout, "%d faces, %d vertices, %d materials\n", group.FaceCount(), group.VertexCount(), len(group))
	return nil
}

func cmdInfo(args []string, stdout io.Writer) error {
	cfg, fs, err := setup("info", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: vox2obj info <in.vox>")
	}

	vox, err := loadScene(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "File: %s\n", fs.Arg(0))
	fmt.Fprint(stdout, vox.Summary())

	groups := mesher.PolygonizeScene(vox, cfg.Export.Workers)
	if len(groups) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Models:")
	}
	for i, g := range groups {
		model := vox.Models[i]
		bounds := "-"
		if b, ok := mesher.ModelBounds(model); ok {
			bounds = fmt.Sprintf("%v..%v", b.Min, b.Max)
		}
		fmt.Fprintf(stdout, "  [%d] voxels=%-6d faces=%-6d materials=%-3d bounds=%s digest=%016x\n",
			i, len(model.Voxels), g.FaceCount(), len(g), bounds, g.Digest())
	}

	if nodes := vox.Nodes(); len(nodes) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Nodes:")
		for _, n := range nodes {
			fmt.Fprintf(stdout, "  %s %d%s\n", n.Kind(), n.Base().NodeID, describeNode(n))
		}
	}

	if instances := vox.Instances(); len(instances) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Instances:")
		for _, inst := range instances {
			var flags string
			if inst.Rotation.Determinant() < 0 {
				flags += " mirrored"
			}
			if inst.Hidden {
				flags += " hidden"
			}
			fmt.Fprintf(stdout, "  model %d shape %d at %d %d %d%s\n",
				inst.ModelID, inst.ShapeID, inst.Translation.X, inst.Translation.Y, inst.Translation.Z, flags)
		}
	}

	if len(vox.Warnings) > 0 {
		fmt.Fprintf(stdout, "\nWarnings: %d\n", len(vox.Warnings))
	}
	return nil
}

// describeNode returns the attributes worth printing for a node.
func describeNode(n formats.VOXNode) string {
	var parts []string
	if name := n.Base().Name; name != "" {
		parts = append(parts, fmt.Sprintf("name=%q", name))
	}
	if n.Base().Hidden {
		parts = append(parts, "hidden")
	}

	switch node := n.(type) {
	case *formats.VOXTransform:
		parts = append(parts, fmt.Sprintf("child=%d layer=%d t=%v", node.ChildNodeID, node.LayerID, node.InitialFrame.Translation))
		if node.InitialFrame.IsMirrored() {
			parts = append(parts, "mirrored")
		}
	case *formats.VOXGroup:
		parts = append(parts, fmt.Sprintf("children=%v", node.Children))
	case *formats.VOXShape:
		parts = append(parts, fmt.Sprintf("models=%v", node.ModelIDs()))
	}

	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

func cmdDump(args []string, stdout io.Writer) error {
	_, fs, err := setup("dump", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: vox2obj dump <in.vox>")
	}

	vox, err := loadScene(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "# %s\n", filepath.Base(fs.Arg(0)))
	spewConfig.Fdump(stdout, vox.Nodes(), vox.Materials, vox.Warnings)
	return nil
}

func cmdConfig(args []string, stdout io.Writer) error {
	cfg, fs, err := setup("config", args)
	if err != nil {
		return err
	}

	path := filepath.Join(config.ConfigDir(), config.FileName)
	if fs.NArg() > 0 {
		path = fs.Arg(0)
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(stdout, "Saved: %s\n", path)
	return nil
}
