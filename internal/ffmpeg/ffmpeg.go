package ffmpeg

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type CodecSettings struct {
	VideoCodec      string
	ContainerFormat string
	FileExtension   string
	EncoderPresets  map[string]ffmpeg.KwArgs
}

// Preset applied to every loop render.
const LoopPreset = "loop"

var codecPresets = map[string]CodecSettings{
	"webm": {
		VideoCodec:      "libvpx-vp9",
		ContainerFormat: "webm",
		FileExtension:   ".webm",
		EncoderPresets: map[string]ffmpeg.KwArgs{
			LoopPreset: {
				"crf":      15,
				"b:v":      0,
				"deadline": "good",
				"cpu-used": 2,
				"row-mt":   1,
			},
		},
	},
	"mp4": {
		VideoCodec:      "libx264",
		ContainerFormat: "mp4",
		FileExtension:   ".mp4",
		EncoderPresets: map[string]ffmpeg.KwArgs{
			LoopPreset: {
				"preset":   "slow",
				"crf":      18,
				"tune":     "stillimage",
				"movflags": "+faststart",
				"tag:v":    "avc1",
			},
		},
	},
}

func GetCodecSettings(outputFormat string) CodecSettings {
	if settings, ok := codecPresets[outputFormat]; ok {
		return settings
	}
	// Default to MP4
	return codecPresets["mp4"]
}

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration   float64
	Width      int
	Height     int
	Codec      string
	FrameRate  float64
	FrameCount int
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Duration   string `json:"duration"`
	NbFrames   string `json:"nb_frames"`
	RFrameRate string `json:"r_frame_rate"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// GetVideoMetadata retrieves metadata about a video file
func GetVideoMetadata(inputPath string) (*VideoMetadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, errors.Wrapf(err, "error probing video %s", inputPath)
	}
	return parseProbe(probe)
}

func parseProbe(probe string) (*VideoMetadata, error) {
	var data probeOutput
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	if len(data.Streams) == 0 {
		return nil, fmt.Errorf("no streams found in video")
	}

	var videoStream *probeStream
	for i := range data.Streams {
		if data.Streams[i].CodecType == "video" {
			videoStream = &data.Streams[i]
			break
		}
	}

	if videoStream == nil {
		return nil, fmt.Errorf("no video stream found")
	}

	frameRate := parseFrameRate(videoStream.RFrameRate)
	frames, _ := strconv.Atoi(strings.TrimSpace(videoStream.NbFrames))

	// First try video stream duration
	duration := parseSeconds(videoStream.Duration)

	// If stream duration is not available, try format duration
	if duration == 0 {
		duration = parseSeconds(data.Format.Duration)
	}

	// If still no duration found, try calculating from frames and frame rate
	if duration == 0 && frames > 0 && frameRate > 0 {
		duration = float64(frames) / frameRate
	}

	if duration == 0 {
		return nil, fmt.Errorf("could not determine video duration")
	}

	// Some containers (webm) carry no frame count
	if frames == 0 && frameRate > 0 {
		frames = int(math.Round(duration * frameRate))
	}

	return &VideoMetadata{
		Duration:   duration,
		Width:      videoStream.Width,
		Height:     videoStream.Height,
		Codec:      videoStream.CodecName,
		FrameRate:  frameRate,
		FrameCount: frames,
	}, nil
}

func parseSeconds(s string) float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return d
}

func parseFrameRate(rate string) float64 {
	nums := strings.Split(rate, "/")
	if len(nums) != 2 {
		return parseSeconds(rate)
	}
	num, err1 := strconv.ParseFloat(nums[0], 64)
	den, err2 := strconv.ParseFloat(nums[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

func GetOptimalThreadCount() int {
	cpuCount := runtime.NumCPU()
	// Use 75% of available cores to prevent overload
	return int(math.Max(1, float64(cpuCount)*0.75))
}

// Helper function to ensure correct file extension
func EnsureExtension(filename, extension string) string {
	// Remove any existing video extension, whatever its case
	extensions := []string{".mp4", ".webm", ".mkv", ".avi", ".mov"}
	current := filepath.Ext(filename)
	for _, ext := range extensions {
		if strings.EqualFold(current, ext) {
			filename = strings.TrimSuffix(filename, current)
			break
		}
	}
	return filename + extension
}
