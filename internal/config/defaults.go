package config

const (
	defaultConfigPath           = "~/.config/voiceprep/config.toml"
	defaultAudioDir             = "./custom_character_voice"
	defaultAnnotationFile       = "./short_character_anno.txt"
	defaultCheckpointDir        = "./checkpoints"
	defaultLogDir               = "~/.local/share/voiceprep/logs"
	defaultEngine               = "whisperx"
	defaultLanguages            = "CJE"
	defaultTargetSampleRate     = 22050
	defaultMaxDurationSeconds   = 20
	defaultWhisperXModel        = "medium"
	defaultWhisperXBeamSize     = 5
	defaultWhisperXVADMethod    = "silero"
	defaultOpenAIBaseURL        = "https://api.openai.com/v1"
	defaultOpenAIModel          = "whisper-1"
	defaultOpenAITimeoutSeconds = 300
	defaultCheckpointPrefix     = "short_character_anno_"
	defaultSaveInterval         = 100
	defaultCheckpointKeep       = 2
	defaultReferenceFile        = "./text.csv"
	defaultRealignOutput        = "./short_character.txt"
	defaultMismatchLog          = "./log.txt"
	defaultMinScore             = 72.5
	defaultMinLengthRatio       = 0.71
	defaultScorer               = "wratio"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogMaxSizeMB         = 50
	defaultLogMaxBackups        = 5
	defaultLogMaxAgeDays        = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AudioDir:       defaultAudioDir,
			AnnotationFile: defaultAnnotationFile,
			CheckpointDir:  defaultCheckpointDir,
			LogDir:         defaultLogDir,
		},
		Transcribe: Transcribe{
			Engine:             defaultEngine,
			Languages:          defaultLanguages,
			TargetSampleRate:   defaultTargetSampleRate,
			MaxDurationSeconds: defaultMaxDurationSeconds,
		},
		WhisperX: WhisperX{
			Model:       defaultWhisperXModel,
			CUDAEnabled: true,
			BeamSize:    defaultWhisperXBeamSize,
			VADMethod:   defaultWhisperXVADMethod,
		},
		OpenAI: OpenAI{
			BaseURL:        defaultOpenAIBaseURL,
			Model:          defaultOpenAIModel,
			TimeoutSeconds: defaultOpenAITimeoutSeconds,
		},
		Checkpoint: Checkpoint{
			Prefix:       defaultCheckpointPrefix,
			SaveInterval: defaultSaveInterval,
			Keep:         defaultCheckpointKeep,
		},
		Realign: Realign{
			ReferenceFile:  defaultReferenceFile,
			OutputFile:     defaultRealignOutput,
			MismatchLog:    defaultMismatchLog,
			MinScore:       defaultMinScore,
			MinLengthRatio: defaultMinLengthRatio,
			Scorer:         defaultScorer,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
