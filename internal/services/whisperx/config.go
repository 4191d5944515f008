package whisperx

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// Model is the WhisperX model to use (e.g., "medium", "large-v3").
	Model string
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
	// BeamSize is the decoder beam width.
	BeamSize int
	// VADMethod selects the voice activity detection method ("silero" or "pyannote").
	VADMethod string
	// HFToken is the Hugging Face token for pyannote VAD.
	HFToken string
	// WorkDir receives the per-file WhisperX output directories. Empty uses
	// the system temp directory.
	WorkDir string
}

// WhisperX configuration constants.
const (
	DefaultModel      = "medium"
	DefaultBeamSize   = 5
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	BatchSize         = "4"
	BestOf            = "5"
	Temperature       = "0.0"
	OutputFormat      = "json"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "float32"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
)

// UVXCommand launches WhisperX in an isolated Python environment.
const UVXCommand = "uvx"
