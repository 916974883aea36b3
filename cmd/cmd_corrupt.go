// cmd_corrupt.go - evenodd und multishot Commands
// Hauptfunktionen: EvenOddHandler, MultiShotHandler
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/7blacky7/mrimotion/affine"
	"github.com/7blacky7/mrimotion/cplx"
	"github.com/7blacky7/mrimotion/envconfig"
	"github.com/7blacky7/mrimotion/fft"
	"github.com/7blacky7/mrimotion/imageio"
	"github.com/7blacky7/mrimotion/motion"
	"github.com/7blacky7/mrimotion/rng"
)

// EvenOddHandler - Bild laden, k-space mit Phasenfehlern versehen, Betragsbild speichern
func EvenOddHandler(cmd *cobra.Command, args []string) error {
	scale, err := cmd.Flags().GetFloat64("scale")
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}
	channelFirst, err := cmd.Flags().GetBool("channel-first")
	if err != nil {
		return err
	}

	img, err := loadInput(cmd, args[0])
	if err != nil {
		return err
	}
	h, w := img.Height(), img.Width()

	// k-space als [1, 1, H, W] bzw. [1, H, W, 1], Zeilen liegen in beiden Faellen auf W
	kspace := fft.FFT2c(img)
	if channelFirst {
		kspace.Shape = []int{1, 1, h, w}
	} else {
		kspace.Shape = []int{1, h, w, 1}
	}

	corrupted, err := motion.EvenOddMotion(kspace, scale, channelFirst, rng.New(seed))
	if err != nil {
		return err
	}
	corrupted.Shape = []int{1, h, w}

	slog.Info("even/odd phase error applied", "input", args[0], "scale", scale, "seed", seed, "size", fmt.Sprintf("%dx%d", w, h))
	return imageio.SaveMagnitude(args[1], fft.IFFT2c(corrupted))
}

// MultiShotHandler - Bild laden, Multi-Shot Bewegung simulieren, Betragsbild speichern
func MultiShotHandler(cmd *cobra.Command, args []string) error {
	shots, err := cmd.Flags().GetInt("shots")
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return err
	}
	degrees, err := cmd.Flags().GetFloat64("degrees")
	if err != nil {
		return err
	}
	translate, err := cmd.Flags().GetFloat64("translate")
	if err != nil {
		return err
	}
	traj, err := trajectoryFlag(cmd)
	if err != nil {
		return err
	}

	img, err := loadInput(cmd, args[0])
	if err != nil {
		return err
	}

	random := &affine.RandomAffine{
		Degrees:   degrees,
		Translate: [2]float64{translate, translate},
		Rand:      rng.New(seed),
	}
	if err := random.Validate(); err != nil {
		return err
	}

	gen := motion.GeneratorFunc(func(x *cplx.Array) (motion.Transform, error) {
		t, err := random.GetTransform(x)
		if err != nil {
			return nil, err
		}
		slog.Debug("shot transform", "angle", t.Angle, "tx", t.TX, "ty", t.TY)
		return t, nil
	})

	kspace, err := motion.MotionCorruption(img, shots, gen, traj, motion.WithWorkers(workers))
	if err != nil {
		return err
	}

	slog.Info("multi-shot motion applied", "input", args[0], "shots", shots, "trajectory", traj, "seed", seed, "workers", workers)
	return imageio.SaveMagnitude(args[1], fft.IFFT2c(kspace))
}

// loadInput - Laedt das Eingabebild und skaliert es optional
func loadInput(cmd *cobra.Command, path string) (*cplx.Array, error) {
	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return imageio.LoadImage(path)
	}

	img, err := imageio.LoadImage(path)
	if err != nil {
		return nil, err
	}
	resized, err := imageio.Resize(imageio.Magnitude(img, 0), size, size)
	if err != nil {
		return nil, err
	}
	return imageio.FromImage(resized), nil
}

// trajectoryFlag - Liest und validiert --trajectory
func trajectoryFlag(cmd *cobra.Command) (motion.Trajectory, error) {
	name, err := cmd.Flags().GetString("trajectory")
	if err != nil {
		return 0, err
	}
	return motion.ParseTrajectory(name)
}

// addCommonFlags - Flags fuer alle Commands mit Bildein- und -ausgabe
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("seed", envconfig.Seed(), "Random seed")
	cmd.Flags().Int("size", 0, "Resize the input to size x size before corruption (0 keeps the original size)")
}

// newEvenOddCmd - Erstellt den evenodd Command
func newEvenOddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evenodd INPUT OUTPUT",
		Short:   "Add even/odd line phase errors (ghosting)",
		Args:    cobra.ExactArgs(2),
		PreRunE: checkInput,
		RunE:    EvenOddHandler,
	}

	cmd.Flags().Float64("scale", 0.1, "Phase error severity, errors are drawn from [-pi*scale, pi*scale]")
	cmd.Flags().Bool("channel-first", envconfig.ChannelFirst(), "Lay out k-space as [B, C, H, W] instead of [B, H, W, C]")
	addCommonFlags(cmd)
	return cmd
}

// newMultiShotCmd - Erstellt den multishot Command
func newMultiShotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "multishot INPUT OUTPUT",
		Short:   "Simulate patient motion between shots of a multi-shot acquisition",
		Args:    cobra.ExactArgs(2),
		PreRunE: checkInput,
		RunE:    MultiShotHandler,
	}

	cmd.Flags().Int("shots", 4, "Number of shots")
	cmd.Flags().String("trajectory", envconfig.Trajectory(), "Line ordering: blocked or interleaved")
	cmd.Flags().Int("workers", int(envconfig.Workers()), "Number of shots transformed in parallel")
	cmd.Flags().Float64("degrees", envconfig.MaxDegrees(), "Maximum rotation per shot in degrees")
	cmd.Flags().Float64("translate", envconfig.MaxTranslate(), "Maximum translation per shot as fraction of the image size")
	addCommonFlags(cmd)
	return cmd
}
