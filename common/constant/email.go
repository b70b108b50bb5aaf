package constant

const EmailEnquiryNotificationTemplate = `
New enquiry received on design-folio.

Enquiry Details:
------------------------------------------
Reference: %s
Name: %s
Email: %s
Company: %s
Interested In: %s
------------------------------------------

Message:
%s

Received at: %s

Reply directly to the sender's email address to follow up.
`

const EmailEnquiryAcknowledgementTemplate = `
Hi %s,

Thanks for getting in touch! Your enquiry has been received and I'll get
back to you within two working days.

Your reference: %s
%s
If anything urgent comes up in the meantime, just reply to this email.

Best,
Studio
`
