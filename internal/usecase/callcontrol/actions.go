package callcontrol

import (
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

func hangupAction(callID string) entities.Action {
	return entities.Action{
		Type: entities.ActionHangup,
		Parameters: entities.ActionParameters{
			SipResponseCode: "0",
			CallID:          callID,
		},
	}
}

func speakAction(callID, text string) entities.Action {
	return entities.Action{
		Type: entities.ActionSpeak,
		Parameters: entities.ActionParameters{
			Text:         text,
			CallID:       callID,
			Engine:       "neural",
			LanguageCode: "en-US",
			TextType:     "text",
			VoiceID:      "Joanna",
		},
	}
}

func pauseAction(callID string, milliseconds int) entities.Action {
	return entities.Action{
		Type: entities.ActionPause,
		Parameters: entities.ActionParameters{
			CallID:                 callID,
			DurationInMilliseconds: milliseconds,
		},
	}
}

func sendDigitsAction(callID, digits string, toneMilliseconds int) entities.Action {
	return entities.Action{
		Type: entities.ActionSendDigits,
		Parameters: entities.ActionParameters{
			CallID:                     callID,
			Digits:                     digits,
			ToneDurationInMilliseconds: toneMilliseconds,
		},
	}
}

func recordAudioAction(callID, bucket, prefix string) entities.Action {
	return entities.Action{
		Type: entities.ActionRecordAudio,
		Parameters: entities.ActionParameters{
			CallID:                   callID,
			DurationInSeconds:        7200,
			SilenceDurationInSeconds: 30,
			SilenceThreshold:         100,
			RecordingTerminators:     []string{"#"},
			RecordingDestination: &entities.RecordingDestination{
				Type:       "S3",
				BucketName: bucket,
				Prefix:     prefix,
			},
		},
	}
}
