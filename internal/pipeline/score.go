package pipeline

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/empscore/internal/combiner"
	"github.com/vijay-prabhu/empscore/internal/market"
	"github.com/vijay-prabhu/empscore/internal/model"
	"github.com/vijay-prabhu/empscore/internal/personal"
)

// scoreStep computes one dimension
type scoreStep struct {
	name  string
	phase ProgressPhase
	run   func() (*scored, error)
}

// computeScores runs the four market and ten personal score steps. A
// dimension whose rules are missing from the meta table yields an empty
// table and its error is returned in skipped; any other error aborts.
func (p *Pipeline) computeScores(f *Facts, meta []model.ScoreMeta, now time.Time, report func(ProgressPhase, int, int, string)) (dims []*scored, skipped []error, err error) {
	steps := p.scoreSteps(f, meta, now)

	for i, step := range steps {
		report(step.phase, i+1, len(steps), step.name)

		s, err := step.run()
		var stale *personal.StaleMetaError
		if errors.As(err, &stale) {
			p.logger.Warn("score dimension skipped",
				zap.String("table", step.name), zap.Error(err))
			skipped = append(skipped, fmt.Errorf("%s: %w", step.name, err))
			dims = append(dims, emptyScored(step.name))
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to compute %s: %w", step.name, err)
		}

		p.logger.Debug("score dimension computed",
			zap.String("table", step.name), zap.Int("rows", s.table.Len()))
		dims = append(dims, s)
	}

	return dims, skipped, nil
}

func (p *Pipeline) scoreSteps(f *Facts, meta []model.ScoreMeta, now time.Time) []scoreStep {
	return []scoreStep{
		{"ms_calc_total_exp", PhaseMarket, func() (*scored, error) {
			ratio := market.ExperienceRatio(f.PopulationWorkAgg)
			return totalExpTable(market.TotalExpWithPopulation(f.EligibleWorkAgg, ratio)), nil
		}},
		{"ms_calc_domain", PhaseMarket, func() (*scored, error) {
			ratio := market.DomainRatio(f.PopulationDomains)
			return summed("ms_calc_domain", combiner.MSDomain, market.DomainWithPopulation(f.EligibleDomains, ratio))
		}},
		{"ms_calc_skillset", PhaseMarket, func() (*scored, error) {
			ratio := market.SkillSetRatio(f.PopulationTech)
			return summed("ms_calc_skillset", combiner.MSSkillSet, market.SkillSetWithPopulation(f.EligibleTech, ratio))
		}},
		{"ms_calc_cert_trend", PhaseMarket, func() (*scored, error) {
			ratio := market.CertificateTrendRatio(f.CertTrend)
			return summed("ms_calc_cert_trend", combiner.MSCert, market.CertificateWithTrend(f.EligibleCerts, ratio))
		}},
		{"ps_calc_education", PhasePersonal, func() (*scored, error) {
			rows, err := personal.EducationTypeScore(f.EligibleEducation, meta)
			if err != nil {
				return nil, err
			}
			return educationTable(rows), nil
		}},
		{"ps_calc_cert", PhasePersonal, func() (*scored, error) {
			rows, err := personal.ValidCertificateScore(f.EligibleCerts, p.cfg.ValidCertYears, now)
			if err != nil {
				return nil, err
			}
			return countTable("ps_calc_cert", combiner.PSCert, rows), nil
		}},
		{"ps_calc_domain", PhasePersonal, func() (*scored, error) {
			return countTable("ps_calc_domain", combiner.PSDomain, personal.DomainScore(f.EligibleWorkAgg)), nil
		}},
		{"ps_calc_reliability", PhasePersonal, func() (*scored, error) {
			return reliabilityTable(personal.ReliabilityScore(f.EligibleWorkAgg)), nil
		}},
		{"ps_calc_skillset", PhasePersonal, func() (*scored, error) {
			rows, err := personal.SkillSetScore(f.EligibleTech)
			if err != nil {
				return nil, err
			}
			return countTable("ps_calc_skillset", combiner.PSSkillSet, rows), nil
		}},
		{"ps_calc_interview", PhasePersonal, func() (*scored, error) {
			rows := personal.InterviewScore(f.EligibleInterviews, p.cfg.InterviewStatuses)
			return employeeTable("ps_calc_interview", combiner.PSInterview, rows), nil
		}},
		{"ps_calc_offers", PhasePersonal, func() (*scored, error) {
			return counted("ps_calc_offers", combiner.PSOffers, f.EligibleOffers)
		}},
		{"ps_calc_referral", PhasePersonal, func() (*scored, error) {
			return counted("ps_calc_referral", combiner.PSReferral, f.EligibleReferrals)
		}},
		{"ps_calc_reporting", PhasePersonal, func() (*scored, error) {
			return counted("ps_calc_reporting", combiner.PSReporting, f.EligibleReportings)
		}},
		{"ps_calc_exp", PhasePersonal, func() (*scored, error) {
			rows, err := personal.ExpYearScore(f.EligibleWorkAgg, meta)
			if err != nil {
				return nil, err
			}
			return expYearTable(rows), nil
		}},
	}
}

func summed(name string, dim combiner.Dimension, rows []model.CategoryScore) (*scored, error) {
	sums, err := market.SumByEmployee(rows)
	if err != nil {
		return nil, err
	}
	return employeeTable(name, dim, sums), nil
}

func counted(name string, dim combiner.Dimension, rows []model.Activity) (*scored, error) {
	counts, err := personal.CountScore(rows)
	if err != nil {
		return nil, err
	}
	return countTable(name, dim, counts), nil
}
