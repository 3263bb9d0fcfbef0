package pipeline

import "fmt"

// Stage prompts. Each stage sends exactly one prompt per invocation (the
// cleaning stage sends one per chunk) with temperature pinned at zero.

func diarizationPrompt(transcript string) string {
	return fmt.Sprintf(`You are a meeting transcript names extractor. Go over the transcript and extract the names from it. Use the following instructions in the <instructions></instructions> xml tags
<transcript> %s </transcript>
<instructions>
- Some transcripts will be in different languages other than English.
- Extract the names like this example - spk_0: "name1", spk_1: "name2".
- Only extract the names like the example above and do not add any other words to your response
- Your response should only have a list of "speakers" and their associated name separated by a ":" surrounded by {}
- if there is only one speaker identified then surround your answer with {}
- the format should look like this {"spk_0": "Name", "spk_1": "Name2", etc.}, no unnecessary spacing should be added
</instructions>

Only return a JSON formatted response with the Name and the speaker label associated to it. Do not add any other words to your answer. Do NOT EVER add any introductory sentences in your answer. Only give the names of the speakers actively speaking in the meeting.`, transcript)
}

func cleaningPrompt(transcript string) string {
	return fmt.Sprintf(`You are a transcript editor, please follow the <instructions> tags.

<transcript> %s </transcript>

<instructions>
- The <transcript> contains a speaker diarized transcript
- Go over the transcript and remove all filler words. For example "um, uh, er, well, like, you know, okay, so, actually, basically, honestly, anyway, literally, right, I mean."
- Fix any errors in transcription that may be caused by homophones based on the context of the sentence. For example, "one instead of won" or "high instead of hi"
- In addition, please fix the transcript in cases where diarization is improperly performed. For example, in some cases you will see that sentences are split between two speakers. In this case infer who the actual speaker is and attribute it to them.

Input Example
Chris: Adam you are saying the wrong thing. What
Adam: um do you mean, Chris?

Output:
Chris: Adam you are saying the wrong thing.
Adam: What do you mean, Chris?

- In your response, return the entire cleaned transcript, including all of the filler word removal and the improved diarization. Only return the transcript, do not include any leading or trailing sentences. You are not summarizing. You are cleaning the transcript. Do not include any xml tags <>
</instructions>`, transcript)
}

func summaryPrompt(transcript string) string {
	return fmt.Sprintf(`You are a transcript summarizing bot. You will go over the transcript below and provide a summary following the <instructions></instructions> xml tags.

<transcript> %s </transcript>

<instructions>
- Go over the conversation that was had in the transcript
- Create a summary based on what occurred in the meeting
- Highlight specific action items that came up in the meeting, including follow-up tasks for each person
- If relevant, focus on what specific cloud services were mentioned during the conversation.
</instructions>

If there is not enough context to generate a proper summary, then just return a string that says "Meeting not long enough to generate a transcript."`, transcript)
}
