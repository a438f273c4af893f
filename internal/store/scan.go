package store

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/loanops/internal/model"
)

// scannable is satisfied by pgx.Rows, pgx.Row, *sql.Rows and *sqlx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// nullTime accepts time.Time from pgx and Postgres, and the text encodings
// SQLite hands back for DATETIME columns.
type nullTime struct {
	Time  time.Time
	Valid bool
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (nt *nullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		nt.Time, nt.Valid = time.Time{}, false
		return nil
	case time.Time:
		nt.Time, nt.Valid = v, true
		return nil
	case []byte:
		return nt.parse(string(v))
	case string:
		return nt.parse(v)
	default:
		return eris.Errorf("store: cannot scan %T into timestamp", src)
	}
}

func (nt *nullTime) parse(s string) error {
	if s == "" {
		nt.Time, nt.Valid = time.Time{}, false
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			nt.Time, nt.Valid = t, true
			return nil
		}
	}
	return eris.Errorf("store: unrecognized timestamp %q", s)
}

func (nt nullTime) ptr() *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// nullText accepts text or integer columns; ids and http statuses are
// integers in some deployments and text in others.
type nullText struct {
	String string
	Valid  bool
}

func (nt *nullText) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		nt.String, nt.Valid = "", false
	case string:
		nt.String, nt.Valid = v, true
	case []byte:
		nt.String, nt.Valid = string(v), true
	case int64:
		nt.String, nt.Valid = strconv.FormatInt(v, 10), true
	case int32:
		nt.String, nt.Valid = strconv.FormatInt(int64(v), 10), true
	case int:
		nt.String, nt.Valid = strconv.Itoa(v), true
	case float64:
		nt.String, nt.Valid = strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return eris.Errorf("store: cannot scan %T into text", src)
	}
	return nil
}

func (nt nullText) ptr() *string {
	if !nt.Valid {
		return nil
	}
	return &nt.String
}

func (nt nullText) orEmpty() string {
	return nt.String
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

func scanLoanRow(row scannable) (model.LoanRow, error) {
	var (
		r                                           model.LoanRow
		loanNumber, name, pan, phone                nullText
		approved, disbursed, rate, emi, inst, outst sql.NullFloat64
		status, tenure                              sql.NullInt64
		approvedOn, disbursedOn, created            nullTime
		maturity, firstInst                         nullTime
	)
	err := row.Scan(&r.ID, &loanNumber, &approved, &disbursed, &approvedOn,
		&disbursedOn, &rate, &status, &created, &tenure, &emi, &inst, &outst,
		&maturity, &firstInst, &name, &pan, &phone)
	if err != nil {
		return r, eris.Wrap(err, "store: scan loan")
	}
	r.LoanNumber = loanNumber.ptr()
	r.ApprovedAmount = floatPtr(approved)
	r.DisbursedAmount = floatPtr(disbursed)
	r.ApprovedOn = approvedOn.ptr()
	r.DisbursedOn = disbursedOn.ptr()
	r.InterestRate = floatPtr(rate)
	r.Status = intPtr(status)
	r.CreationTime = created.ptr()
	r.Tenure = intPtr(tenure)
	r.EMIAmount = floatPtr(emi)
	r.InstallmentAmount = floatPtr(inst)
	r.OutstandingAmount = floatPtr(outst)
	r.MaturityDate = maturity.ptr()
	r.FirstInstallmentDate = firstInst.ptr()
	r.ClientName = name.ptr()
	r.ClientPAN = pan.ptr()
	r.Phone = phone.ptr()
	return r, nil
}

func scanCamsSecurity(row scannable, n model.Normalizer) (model.Security, error) {
	var (
		id, scripID, loanID, accountID                              nullText
		lienMarkNo, amc, folio, scheme, pan, lienRefNumber, lienRef nullText
		nsdl, kfin, rta, isin, mfc, depository, pledgeMode          nullText
		attached, total, pledged, value, current, invocation, ltv   sql.NullFloat64
		isPledge, isActive                                          sql.NullInt64
		created, updated                                            nullTime
	)
	err := row.Scan(&id, &scripID, &loanID, &accountID, &attached, &total,
		&pledged, &isPledge, &value, &lienMarkNo, &isActive, &amc, &folio,
		&scheme, &pan, &lienRefNumber, &current, &lienRef, &nsdl, &kfin,
		&invocation, &rta, &isin, &mfc, &depository, &ltv, &pledgeMode,
		&created, &updated)
	if err != nil {
		return model.Security{}, eris.Wrap(err, "store: scan cams security")
	}
	return model.Security{
		ID:                  idOrUnknown(id),
		ScripID:             n.Str(scripID.ptr()),
		LoanID:              n.Str(loanID.ptr()),
		AccountID:           n.Str(accountID.ptr()),
		AttachedQuantity:    n.Num(floatPtr(attached)),
		TotalQuantity:       n.Num(floatPtr(total)),
		PledgedQuantity:     n.Num(floatPtr(pledged)),
		IsPledge:            n.Flag(intPtr(isPledge)),
		PledgeTimeValue:     n.Num(floatPtr(value)),
		IsActive:            n.Flag(intPtr(isActive)),
		NSDLStatus:          n.Str(nsdl.ptr()),
		LienMarkNo:          n.Str(lienMarkNo.ptr()),
		AMCCode:             n.Str(amc.ptr()),
		LienReferenceNumber: n.Str(lienRefNumber.ptr()),
		CurrentQuantity:     n.Num(floatPtr(current)),
		LienRefNo:           n.Str(lienRef.ptr()),
		SchemeCode:          n.Str(scheme.ptr()),
		PledgeTimeLTV:       n.Num(floatPtr(ltv)),
		PledgeMode:          n.Str(pledgeMode.ptr()),
		DepositoryCode:      n.Str(depository.ptr()),
		CreatedAt:           n.Time(created.ptr()),
		UpdatedAt:           n.Time(updated.ptr()),
		Type:                model.SecurityCAMS,
		FolioNumber:         n.Str(folio.ptr()),
		PANNumber:           n.Str(pan.ptr()),
		KfinStatus:          n.Str(kfin.ptr()),
		InvocationQuantity:  n.Num(floatPtr(invocation)),
		RTAName:             n.Str(rta.ptr()),
		ISIN:                n.Str(isin.ptr()),
		MFCentralStatus:     n.Str(mfc.ptr()),
	}, nil
}

func scanLedgerSecurity(row scannable, n model.Normalizer) (model.Security, error) {
	var (
		id, scripID, loanID, accountID, demat           nullText
		lienMarkNo, amc, scheme, lienRefNumber, lienRef nullText
		nsdl, depository, pledgeMode                    nullText
		attached, total, pledged, value, current, ltv   sql.NullFloat64
		isPledge, isActive                              sql.NullInt64
		created, updated                                nullTime
	)
	err := row.Scan(&id, &scripID, &loanID, &accountID, &demat, &attached,
		&total, &pledged, &isPledge, &value, &lienMarkNo, &isActive, &amc,
		&scheme, &lienRefNumber, &current, &lienRef, &nsdl, &depository, &ltv,
		&pledgeMode, &created, &updated)
	if err != nil {
		return model.Security{}, eris.Wrap(err, "store: scan ledger security")
	}
	return model.Security{
		ID:                  idOrUnknown(id),
		ScripID:             n.Str(scripID.ptr()),
		LoanID:              n.Str(loanID.ptr()),
		AccountID:           n.Str(accountID.ptr()),
		AttachedQuantity:    n.Num(floatPtr(attached)),
		TotalQuantity:       n.Num(floatPtr(total)),
		PledgedQuantity:     n.Num(floatPtr(pledged)),
		IsPledge:            n.Flag(intPtr(isPledge)),
		PledgeTimeValue:     n.Num(floatPtr(value)),
		IsActive:            n.Flag(intPtr(isActive)),
		NSDLStatus:          n.Str(nsdl.ptr()),
		LienMarkNo:          n.Str(lienMarkNo.ptr()),
		AMCCode:             n.Str(amc.ptr()),
		LienReferenceNumber: n.Str(lienRefNumber.ptr()),
		CurrentQuantity:     n.Num(floatPtr(current)),
		LienRefNo:           n.Str(lienRef.ptr()),
		SchemeCode:          n.Str(scheme.ptr()),
		PledgeTimeLTV:       n.Num(floatPtr(ltv)),
		PledgeMode:          n.Str(pledgeMode.ptr()),
		DepositoryCode:      n.Str(depository.ptr()),
		CreatedAt:           n.Time(created.ptr()),
		UpdatedAt:           n.Time(updated.ptr()),
		Type:                model.SecurityRegular,
		DematAccountID:      n.Str(demat.ptr()),
	}, nil
}

func scanProviderRequest(row scannable, n model.Normalizer) (model.ProviderRequest, error) {
	var (
		id, entityID, entityType, requestType, provider, state nullText
		requested, responded, created, updated                 nullTime
	)
	err := row.Scan(&id, &entityID, &entityType, &requestType, &provider,
		&state, &requested, &responded, &created, &updated)
	if err != nil {
		return model.ProviderRequest{}, eris.Wrap(err, "store: scan provider request")
	}
	return model.ProviderRequest{
		ID:           idOrUnknown(id),
		EntityID:     n.Str(entityID.ptr()),
		EntityType:   n.Str(entityType.ptr()),
		RequestType:  n.Str(requestType.ptr()),
		Provider:     n.Str(provider.ptr()),
		State:        n.Str(state.ptr()),
		RequestTime:  n.Time(requested.ptr()),
		ResponseTime: n.Time(responded.ptr()),
		CreatedAt:    n.Time(created.ptr()),
		UpdatedAt:    n.Time(updated.ptr()),
	}, nil
}

// scanProviderLog leaves the preview fields empty; the engine derives them
// from the full bodies.
func scanProviderLog(row scannable, n model.Normalizer) (model.ProviderLog, error) {
	var (
		id, entityID, entityType, provider, typ, status nullText
		payload, httpStatus, response                   nullText
		created, modified                               nullTime
	)
	err := row.Scan(&id, &entityID, &entityType, &provider, &typ, &status,
		&payload, &httpStatus, &response, &created, &modified)
	if err != nil {
		return model.ProviderLog{}, eris.Wrap(err, "store: scan provider log")
	}
	return model.ProviderLog{
		ID:           idOrUnknown(id),
		EntityID:     n.Str(entityID.ptr()),
		EntityType:   n.Str(entityType.ptr()),
		Provider:     n.Str(provider.ptr()),
		Type:         n.Str(typ.ptr()),
		Status:       n.Str(status.ptr()),
		HTTPStatus:   n.Str(httpStatus.ptr()),
		FullPayload:  payload.orEmpty(),
		FullResponse: response.orEmpty(),
		CreatedAt:    n.Time(created.ptr()),
		ModifiedAt:   n.Time(modified.ptr()),
	}, nil
}

func scanEligibilityRequest(row scannable, n model.Normalizer) (model.EligibilityRequest, error) {
	var (
		id, entityID, provider, state nullText
		created                       nullTime
	)
	if err := row.Scan(&id, &entityID, &provider, &state, &created); err != nil {
		return model.EligibilityRequest{}, eris.Wrap(err, "store: scan eligibility request")
	}
	return model.EligibilityRequest{
		ID:        idOrUnknown(id),
		EntityID:  n.Str(entityID.ptr()),
		Provider:  n.Str(provider.ptr()),
		State:     n.Str(state.ptr()),
		CreatedAt: n.Time(created.ptr()),
	}, nil
}

func scanEligibilitySecurity(row scannable, n model.Normalizer) (model.EligibilitySecurity, error) {
	var (
		id, requestID, securityType, remarks nullText
		value, eligible, ltv                 sql.NullFloat64
		created, updated                     nullTime
	)
	err := row.Scan(&id, &requestID, &securityType, &value, &eligible, &ltv,
		&remarks, &created, &updated)
	if err != nil {
		return model.EligibilitySecurity{}, eris.Wrap(err, "store: scan eligibility security")
	}
	return model.EligibilitySecurity{
		ID:             idOrUnknown(id),
		RequestID:      n.Str(requestID.ptr()),
		SecurityType:   n.Str(securityType.ptr()),
		SecurityValue:  n.Num(floatPtr(value)),
		EligibleAmount: n.Num(floatPtr(eligible)),
		LoanToValue:    n.Num(floatPtr(ltv)),
		Remarks:        n.Str(remarks.ptr()),
		CreatedAt:      n.Time(created.ptr()),
		UpdatedAt:      n.Time(updated.ptr()),
	}, nil
}

// scanBankerCheckRow keeps absent left-join columns empty so grouping can
// tell them apart from real values.
func scanBankerCheckRow(row scannable) (model.BankerCheckRow, error) {
	var severity, checkID, personID, address, email, clientID, locType, secType nullText
	err := row.Scan(&severity, &checkID, &personID, &address, &email, &clientID,
		&locType, &secType)
	if err != nil {
		return model.BankerCheckRow{}, eris.Wrap(err, "store: scan banker check row")
	}
	return model.BankerCheckRow{
		Severity:      severity.orEmpty(),
		BankerCheckID: checkID.orEmpty(),
		PersonID:      personID.orEmpty(),
		AddressLine1:  address.orEmpty(),
		EmailID:       email.orEmpty(),
		ClientID:      clientID.orEmpty(),
		LocationType:  locType.orEmpty(),
		SecurityType:  secType.orEmpty(),
	}, nil
}

func idOrUnknown(id nullText) string {
	if !id.Valid || id.String == "" {
		return "unknown"
	}
	return id.String
}
