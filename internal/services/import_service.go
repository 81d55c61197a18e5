package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"loyaltyadmin/internal/domain"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/utils"
)

// ImportService loads investor and customer rows from an uploaded CSV file.
// The first line must be a header; column order follows the export format of
// the admin screens.
type ImportService struct {
	InvestorRepo repositories.InvestorRepository
	CustomerRepo repositories.CustomerRepository
	RequestID    string
}

var investorHeader = []string{"fullName", "phone", "email", "investedAmount", "currency", "sharePercent"}
var customerHeader = []string{"fullName", "phone", "email", "points", "totalSpent"}

func (s ImportService) ImportInvestors(r io.Reader) (int, error) {
	records, err := readCSV(r, investorHeader)
	if err != nil {
		return 0, err
	}
	imported := 0
	for i, rec := range records {
		amount, err := parseFloat(rec[3], "investedAmount", i)
		if err != nil {
			return imported, err
		}
		share, err := parseFloat(rec[5], "sharePercent", i)
		if err != nil {
			return imported, err
		}
		inv := repositories.Investor{
			FullName:       strings.TrimSpace(rec[0]),
			Phone:          strings.TrimSpace(rec[1]),
			Email:          strings.TrimSpace(rec[2]),
			InvestedAmount: amount,
			Currency:       strings.ToUpper(strings.TrimSpace(rec[4])),
			SharePercent:   share,
		}
		if inv.FullName == "" {
			return imported, rowError(i, "fullName", "must not be empty")
		}
		if _, err := s.InvestorRepo.Create(inv); err != nil {
			return imported, err
		}
		imported++
	}
	utils.LogEvent(s.RequestID, "import", "investors", fmt.Sprintf("imported=%d", imported))
	return imported, nil
}

func (s ImportService) ImportCustomers(r io.Reader) (int, error) {
	records, err := readCSV(r, customerHeader)
	if err != nil {
		return 0, err
	}
	imported := 0
	for i, rec := range records {
		points, err := parseInt(rec[3], "points", i)
		if err != nil {
			return imported, err
		}
		spent, err := parseFloat(rec[4], "totalSpent", i)
		if err != nil {
			return imported, err
		}
		cust := repositories.Customer{
			FullName:   strings.TrimSpace(rec[0]),
			Phone:      strings.TrimSpace(rec[1]),
			Email:      strings.TrimSpace(rec[2]),
			Points:     points,
			TotalSpent: spent,
		}
		if cust.FullName == "" {
			return imported, rowError(i, "fullName", "must not be empty")
		}
		if _, err := s.CustomerRepo.Create(cust); err != nil {
			return imported, err
		}
		imported++
	}
	utils.LogEvent(s.RequestID, "import", "customers", fmt.Sprintf("imported=%d", imported))
	return imported, nil
}

func readCSV(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err == io.EOF {
		return nil, domain.ValidationError{Field: "file", Msg: "is empty"}
	}
	if err != nil {
		return nil, domain.ValidationError{Field: "file", Msg: "is not valid CSV"}
	}
	if len(first) != len(header) {
		return nil, domain.ValidationError{
			Field: "file",
			Msg:   fmt.Sprintf("header must have %d columns: %s", len(header), strings.Join(header, ",")),
		}
	}
	for i, want := range header {
		if !strings.EqualFold(strings.TrimSpace(first[i]), want) {
			return nil, domain.ValidationError{Field: "file", Msg: "header column " + strconv.Itoa(i+1) + " must be " + want}
		}
	}

	var out [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.ValidationError{Field: "file", Msg: "is not valid CSV"}
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, domain.ValidationError{Field: "file", Msg: "has no data rows"}
	}
	return out, nil
}

func parseFloat(v, field string, row int) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, rowError(row, field, "must be a number")
	}
	return f, nil
}

func parseInt(v, field string, row int) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, rowError(row, field, "must be an integer")
	}
	return n, nil
}

func rowError(row int, field, msg string) error {
	// row is zero-based over data rows; the header is line 1.
	return domain.ValidationError{Field: field, Msg: fmt.Sprintf("%s (row %d)", msg, row+2)}
}
