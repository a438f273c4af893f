package store

// Queries are written with ? bind vars; the Postgres store rebinds them to
// $n with sqlx.Rebind.

const loanColumns = `l.id, l.loan_number, l.approved_amount, l.disbursed_amount,
	l.approved_on, l.disbursed_on, l.interest_rate, l.status, l.creation_time,
	l.tenure, l.emi_amount, l.installment_amount, l.outstanding_amount,
	l.maturity_date, l.first_installment_date, c.name, c.pan`

const queryLoansByMobile = `SELECT ` + loanColumns + `, m.phone
FROM loans l
JOIN clients c ON c.id = l.client_id
JOIN persons p ON p.client_id = c.id
JOIN person_mobiles pm ON pm.person_id = p.id
JOIN mobiles m ON m.id = pm.mobile_id
WHERE m.phone = ? AND l.is_active = 1
ORDER BY l.creation_time DESC, l.id DESC`

const queryLoansByPAN = `SELECT ` + loanColumns + `,
	(SELECT m.phone FROM persons p
		JOIN person_mobiles pm ON pm.person_id = p.id
		JOIN mobiles m ON m.id = pm.mobile_id
		WHERE p.client_id = c.id ORDER BY m.id LIMIT 1) AS phone
FROM loans l
JOIN clients c ON c.id = l.client_id
WHERE c.pan = ? AND l.is_active = 1
ORDER BY l.creation_time DESC, l.id DESC`

const queryCamsSecurities = `SELECT id, scrip_id, loan_id, account_id,
	attached_quantity, total_quantity, pledged_quantity, is_pledge,
	pledge_time_value, lien_mark_no, is_active, amc_code, folio_number,
	scheme_code, pan_number, lien_reference_number, current_quantity,
	lien_ref_no, nsdl_status, kfin_status, invocation_quantity, rta_name,
	isin, mfcentral_status, depository_code, pledge_time_ltv, pledge_mode,
	created_at, updated_at
FROM cams_loan_scrips
WHERE loan_id = ?
ORDER BY id`

const queryLedgerSecurities = `SELECT id, scrip_id, loan_id, account_id,
	demat_account_id, attached_quantity, total_quantity, pledged_quantity,
	is_pledge, pledge_time_value, lien_mark_no, is_active, amc_code,
	scheme_code, lien_reference_number, current_quantity, lien_ref_no,
	nsdl_status, depository_code, pledge_time_ltv, pledge_mode,
	created_at, updated_at
FROM loan_scrips
WHERE loan_id = ?
ORDER BY id`

const providerRequestColumns = `id, entity_id, entity_type, request_type,
	provider, state, request_time, response_time, created_at, updated_at`

const queryProviderRequests = `SELECT ` + providerRequestColumns + `
FROM provider_requests
WHERE entity_id = ?
ORDER BY created_at DESC, id DESC`

const providerLogColumns = `SELECT id, entity_id, entity_type, provider, type,
	status, payload, http_status, response, created_at, modified_at
FROM provider_logs
WHERE entity_id = ?`

const queryProviderLogs = providerLogColumns + `
ORDER BY created_at DESC, id DESC`

const queryProviderLogsExcluding = providerLogColumns + ` AND type NOT LIKE ?
ORDER BY created_at DESC, id DESC`

const queryEligibilityLeadIDs = `SELECT id FROM eligibility_leads
WHERE mobile_number = ?
ORDER BY id`

// Expanded with sqlx.In for the lead id list.
const queryLatestEligibilityRequest = `SELECT id, entity_id, provider, state, created_at
FROM provider_requests
WHERE entity_type = 'LEAD'
	AND request_type = 'ELIGIBILITY'
	AND state = 'DATA_FETCHED'
	AND provider = ?
	AND entity_id IN (?)
ORDER BY created_at DESC, id DESC
LIMIT 1`

const queryEligibilitySecurities = `SELECT id, request_id, security_type,
	security_value, eligible_amount, loan_to_value, remarks, created_at, updated_at
FROM eligibility_securities
WHERE request_id = ?
ORDER BY id`

// Banker checks hang off the loan; persons, locations and emails come from
// the loan's client.
const queryBankerCheckRows = `SELECT bc.severity, bc.id, p.id, pl.address_line1,
	pe.email_id, l.client_id, pl.location_type, l.security_type
FROM loans l
JOIN persons p ON p.client_id = l.client_id
LEFT JOIN person_locations pl ON pl.person_id = p.id
LEFT JOIN person_emails pe ON pe.person_id = p.id
LEFT JOIN banker_checks bc ON bc.loan_id = l.id
WHERE l.id = ?
ORDER BY p.id, bc.id, pl.id, pe.id`
