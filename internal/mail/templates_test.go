package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-portal/internal/types"
)

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		status      types.ApplicationStatus
		wantSubject string
		wantBody    string
	}{
		{types.StatusAccepted, "Congratulations! Your application for Backend Engineer has been accepted", "has been accepted"},
		{types.StatusShortlisted, "Update on your application for Backend Engineer", "has been shortlisted"},
		{types.StatusRejected, "Update on your application for Backend Engineer", "move forward with other candidates"},
		{types.StatusApplied, "Application Received for Backend Engineer", "Thank you for applying"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			msg, err := RenderStatus(tt.status, "Ana", "Backend Engineer")
			require.NoError(t, err)

			assert.Equal(t, tt.wantSubject, msg.Subject)
			assert.Contains(t, msg.HTML, tt.wantBody)
			assert.Contains(t, msg.HTML, "Ana")
			assert.Contains(t, msg.HTML, "<strong>Backend Engineer</strong>")
			assert.Contains(t, msg.Text, "Backend Engineer")
			assert.NotContains(t, msg.HTML, "ZgotmplZ")
			assert.Empty(t, msg.To)
		})
	}
}

func TestRenderStatus_UnsupportedStatus(t *testing.T) {
	_, err := RenderStatus(types.ApplicationStatus("Archived"), "Ana", "Designer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Archived")
}

func TestRenderStatus_EscapesCandidateInput(t *testing.T) {
	msg, err := RenderStatus(types.StatusAccepted, `<script>alert(1)</script>`, "Designer")
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestRenderStatus_SubjectHasNoLineBreaks(t *testing.T) {
	msg, err := RenderStatus(types.StatusRejected, "Ana", "Designer\r\nBcc: victim@example.com")
	require.NoError(t, err)

	assert.NotContains(t, msg.Subject, "\n")
	assert.NotContains(t, msg.Subject, "\r")
}

func TestRenderStaffNotice(t *testing.T) {
	title := "Designer"
	note := "Hello there"

	msg, err := RenderStaffNotice("staff@example.com", StaffNotice{
		CandidateName: "Ana",
		Email:         "ana@x.com",
		JobID:         "J1",
		JobTitle:      &title,
		Message:       &note,
		ResumeURL:     "https://files.example.com/ana.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "staff@example.com", msg.To)
	assert.Equal(t, "New Application: Ana for Designer", msg.Subject)
	assert.Contains(t, msg.HTML, "Designer (ID: J1)")
	assert.Contains(t, msg.HTML, "Hello there")
	assert.Contains(t, msg.HTML, `href="https://files.example.com/ana.pdf"`)
	assert.Contains(t, msg.Text, "Resume: https://files.example.com/ana.pdf")
}

func TestRenderStaffNotice_MissingJob(t *testing.T) {
	msg, err := RenderStaffNotice("staff@example.com", StaffNotice{
		CandidateName: "Ana",
		Email:         "ana@x.com",
		JobID:         "gone",
		ResumeURL:     "https://files.example.com/ana.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Application: Ana for Open Role", msg.Subject)
	assert.Contains(t, msg.HTML, "N/A (ID: gone)")
}

func TestRenderStaffNotice_UnsafeResumeURL(t *testing.T) {
	msg, err := RenderStaffNotice("staff@example.com", StaffNotice{
		CandidateName: "Ana",
		Email:         "ana@x.com",
		JobID:         "J1",
		ResumeURL:     "javascript:alert(1)",
	})
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "javascript:alert")
}

func TestSanitizeHeader(t *testing.T) {
	assert.Equal(t, "a b c", sanitizeHeader("a\r\nb\nc"))
	assert.Equal(t, "plain", sanitizeHeader("plain"))
}
