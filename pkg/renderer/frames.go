package renderer

import (
	"fmt"
	"os"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("renderer")

// Render drives the frame loop for the given scene. The scene file is
// reloaded for every frame and sub-frame so animated attributes resolve
// to their momentary values. An animation is produced when the scene
// declares more than one frame and no still time; sub-frames blend
// into motion blur.
func Render(origScene *scene.Scene) (*RenderStats, error) {
	stats := &RenderStats{
		Frames:    origScene.Frames,
		SubFrames: origScene.SubFrames,
		Width:     origScene.Camera.Width(),
		Height:    origScene.Camera.Height(),
	}

	begin := time.Now()
	var err error
	if origScene.Frames > 1 && origScene.Time == math.Infinity {
		if origScene.SubFrames > 1 {
			err = renderVideoMotionBlur(origScene, stats)
		} else {
			err = renderVideo(origScene, stats)
		}
	} else {
		if origScene.SubFrames > 1 {
			err = renderImageMotionBlur(origScene, stats)
		} else {
			err = renderImage(origScene, stats)
		}
	}
	stats.Duration = time.Since(begin)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func stillTime(s *scene.Scene) math.Scalar {
	if s.Time == math.Infinity {
		return 0
	}
	return s.Time
}

func renderImage(origScene *scene.Scene, stats *RenderStats) error {
	s, err := scene.Load(origScene.Path, stillTime(origScene))
	if err != nil {
		return err
	}
	if s.PhotonScanSteps > 0 {
		logger.Info("Generating photon map for caustics. This will take some time.")
		MapPhotons(s, stats)
	}
	logger.Info("Rendering image.")
	picture := Raytrace(s, stats)
	return writePicture(origScene.OutputFile, picture)
}

func renderImageMotionBlur(origScene *scene.Scene, stats *RenderStats) error {
	startTime := stillTime(origScene)
	sceneForSubFrames, err := scene.Load(origScene.Path, startTime)
	if err != nil {
		return err
	}
	subFrames := sceneForSubFrames.SubFrames

	picture := core.NewPicture(origScene.Camera.Width(), origScene.Camera.Height())
	for subFrame := 0; subFrame < subFrames; subFrame++ {
		logger.Infof("Rendering image (subframe %d of %d)", subFrame+1, subFrames)
		// one sub-frame at the beginning of the frame time, one at the
		// end, the others distributed evenly in between
		subFrameTime := math.Scalar(subFrame)/math.Scalar(subFrames-1)/math.Scalar(origScene.Frames) + startTime
		s, err := scene.Load(origScene.Path, subFrameTime)
		if err != nil {
			return err
		}
		if s.PhotonScanSteps > 0 {
			MapPhotons(s, stats)
		}
		subPicture := Raytrace(s, stats)
		picture.MulAdd(subPicture, 1/math.Scalar(subFrames))
	}
	return writePicture(origScene.OutputFile, picture)
}

func renderVideo(origScene *scene.Scene, stats *RenderStats) error {
	logger.Infof("Writing animation to %s", origScene.OutputFile)
	animation := output.NewAnimation(origScene.Frames)
	for frame := 0; frame < origScene.Frames; frame++ {
		logger.Infof("Rendering frame %d of %d", frame+1, origScene.Frames)
		s, err := scene.Load(origScene.Path, math.Scalar(frame)/math.Scalar(origScene.Frames-1))
		if err != nil {
			return err
		}
		if s.PhotonScanSteps > 0 {
			MapPhotons(s, stats)
		}
		picture := Raytrace(s, stats)
		animation.AddFrame(picture, s.FPS)
	}
	return writeAnimation(origScene.OutputFile, animation)
}

func renderVideoMotionBlur(origScene *scene.Scene, stats *RenderStats) error {
	logger.Infof("Writing animation to %s", origScene.OutputFile)
	animation := output.NewAnimation(origScene.Frames)
	subFrames := origScene.SubFrames
	for frame := 0; frame < origScene.Frames; frame++ {
		picture := core.NewPicture(origScene.Camera.Width(), origScene.Camera.Height())
		// the scene file may adapt the sub-frame count over time
		newSubFrames := subFrames
		for subFrame := 0; subFrame < subFrames; subFrame++ {
			logger.Infof("Rendering frame %d of %d (subframe %d of %d)",
				frame+1, origScene.Frames, subFrame+1, subFrames)
			subFrameTime := (math.Scalar(frame) + math.Scalar(subFrame)/math.Scalar(subFrames-1)) / math.Scalar(origScene.Frames)
			s, err := scene.Load(origScene.Path, subFrameTime)
			if err != nil {
				return err
			}
			if s.PhotonScanSteps > 0 {
				MapPhotons(s, stats)
			}
			subPicture := Raytrace(s, stats)
			picture.MulAdd(subPicture, 1/math.Scalar(subFrames))
			newSubFrames = s.SubFrames
		}
		animation.AddFrame(picture, origScene.FPS)
		subFrames = newSubFrames
	}
	return writeAnimation(origScene.OutputFile, animation)
}

func writePicture(filename string, picture *core.Picture) error {
	logger.Infof("Writing image to %s", filename)
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("output file could not be opened: %w", err)
	}
	defer file.Close()
	if err := output.WritePNG(file, picture, 1); err != nil {
		return fmt.Errorf("writing output image: %w", err)
	}
	return nil
}

func writeAnimation(filename string, animation *output.Animation) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("output file could not be opened: %w", err)
	}
	defer file.Close()
	if err := animation.Encode(file); err != nil {
		return fmt.Errorf("writing output animation: %w", err)
	}
	return nil
}
