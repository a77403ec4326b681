// Package hypothesis runs the fixed battery of statistical tests over the
// joined transaction view: a one-way ANOVA across stores, pairwise t-tests
// against a reference store, a chi-square independence test of store and
// product category, peak-hour and weekday/weekend effects, and a Pearson
// correlation matrix.
//
// The pairwise comparisons are deliberately NOT corrected for multiple
// testing: each one is judged independently at the configured significance
// level, matching the original analysis. With several comparisons the
// family-wise false positive rate is higher than the per-test level, so
// treat borderline pairwise results with care.
//
// All tests are idempotent and leave the input records untouched.
package hypothesis
