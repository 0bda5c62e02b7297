package email

import (
	"fmt"
	"html"
)

// ApplicationReceived builds the courtesy email sent after a student
// files a membership or activity registration.
func ApplicationReceived(to, studentName, clubName, activityName string) SendRequest {
	subject := fmt.Sprintf("Pendaftaran %s diterima", clubName)
	target := fmt.Sprintf("UKM <strong>%s</strong>", html.EscapeString(clubName))
	if activityName != "" {
		subject = fmt.Sprintf("Pendaftaran kegiatan %s diterima", activityName)
		target = fmt.Sprintf("kegiatan <strong>%s</strong>", html.EscapeString(activityName))
	}

	body := fmt.Sprintf(`<p>Halo %s,</p>
<p>Pendaftaran kamu untuk %s sudah kami terima dan sedang menunggu persetujuan pengurus.</p>
<p>Status pendaftaran bisa dicek kapan saja di halaman profil portal.</p>
<p>Salam,<br>SIU Portal</p>`,
		html.EscapeString(studentName), target)

	return SendRequest{To: []string{to}, Subject: subject, HTML: body}
}

// RegistrationDecided builds the email sent after an admin accepts or
// rejects a registration.
func RegistrationDecided(to, studentName, clubName, status string) SendRequest {
	verdict := "disetujui"
	if status == "rejected" {
		verdict = "ditolak"
	}
	subject := fmt.Sprintf("Pendaftaran %s %s", clubName, verdict)
	body := fmt.Sprintf(`<p>Halo %s,</p>
<p>Pendaftaran kamu untuk UKM <strong>%s</strong> telah <strong>%s</strong>.</p>
<p>Detail lengkap ada di halaman profil portal.</p>
<p>Salam,<br>SIU Portal</p>`,
		html.EscapeString(studentName), html.EscapeString(clubName), verdict)

	return SendRequest{To: []string{to}, Subject: subject, HTML: body}
}
