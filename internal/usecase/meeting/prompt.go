package meeting

import "fmt"

// invitationPrompt asks the model to pull the meeting id, platform and any
// dial-in number out of a pasted invitation. Each platform hides the id in a
// different place, so the per-platform rules are spelled out in full.
func invitationPrompt(invitation string) string {
	return fmt.Sprintf(`You are an information extracting bot. Go over the meeting invitation below and determine what the meeting id and meeting type are. Follow the <instructions></instructions> xml tags.

<invitation> %s </invitation>

<instructions>

1. Identify Meeting Type:
    Determine if the invitation is for Chime, Zoom, Google, Microsoft Teams, or Webex meetings.

2. Chime, Zoom, and Webex
    - Find the meetingID
    - Remove all spaces from the meeting ID (e.g., #### ## #### -> ##########).

3. If Google - Extract Meeting ID and Dial in
    - For Google only, the invitation will call a meetingID a 'PIN', so treat it as a meetingID
    - Remove all spaces from the PIN (e.g., #### ## #### -> ##########).
    - Extract the Google dialIn number
    - Locate the dial-in number following the text "otherwise, to join by phone"
    - Format the extracted Google dial-in number as (+1 ###-###-####), removing dashes and spaces. For example +1 111-111-1111 would become +11111111111

4. If Microsoft Teams
    - Pay attention to these instructions carefully
    - The meetingId we want to store in the generated response is the 'Phone Conference ID' : ### ### ###
    - In the invitation, there are two IDs: a 'Meeting ID' (### ### ### ##) and a 'Phone Conference ID' (### ### ###). Ignore the 'Meeting ID', use the 'Phone Conference ID'
    - Find the phone number, extract it and store it as the dialIn number (format (+1 ###-###-####), removing dashes and spaces. For example +1 111-111-1111 would become +11111111111)

5. meetingType rules
    - The only valid responses for meetingType are 'Chime', 'Webex', 'Zoom', 'Google', 'Teams'

6. meetingId Format Rules

Zoom: ### #### ####
Webex: #### ### ####
Chime: #### ## ####
Google: ### ### #### (last character is always '#')
Teams: ### ### ###

7. Other notes
    - Ensure that the program does not create fake phone numbers and only includes the dial-in number if the meeting type is Google or Teams.
    - Ensure that the meetingId matches perfectly.

8. Generate FINAL JSON Response:
    - Create a response object with the following format:
    {
      "meetingId": "meeting id goes here with spaces removed",
      "meetingType": "meeting type goes here (options: 'Chime', 'Webex', 'Zoom', 'Google', 'Teams')",
      "dialIn": "Insert Microsoft or Google Dial-In number with no dashes or spaces, or N/A if not a Google Meeting or Teams Meeting"
    }
</instructions>

Only return a JSON formatted response with the meetingId and meetingType associated to it. Do not add any other words to your answer. Do not add any introductory sentences in your answer.`, invitation)
}
