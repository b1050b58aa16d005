package explain

import (
	"fmt"

	"github.com/YuminosukeSato/mllab/linear"
	"github.com/YuminosukeSato/mllab/metrics"
)

// LinearRegressionPrompt asks for an interpretation of a fitted line and its
// test MSE.
func LinearRegressionPrompt(params linear.LineParams, mse float64) string {
	return fmt.Sprintf(`Explain these linear regression results for a student.
- Slope: %.4f
- Intercept: %.4f
- Mean Squared Error (MSE) on test data: %.4f
What do these values mean in the context of the model trying to find a line of best fit?`,
		params.Slope, params.Intercept, mse)
}

// LogisticRegressionPrompt asks for an interpretation of a test accuracy
// (percent) and confusion matrix.
func LogisticRegressionPrompt(accuracyPercent float64, cm metrics.ConfusionMatrix) string {
	return fmt.Sprintf(`Explain this logistic regression result for a student.
- Accuracy: %.2f%%
- Confusion Matrix:
  - True Negatives (TN): %d
  - False Positives (FP): %d
  - False Negatives (FN): %d
  - True Positives (TP): %d
What does this confusion matrix tell us about the model's performance on the two classes?`,
		accuracyPercent, cm.TN(), cm.FP(), cm.FN(), cm.TP())
}

// DecisionTreePrompt asks about overfitting at the given depth bound.
func DecisionTreePrompt(maxDepth int) string {
	return fmt.Sprintf(`I'm learning about decision trees and overfitting. I've trained a tree with a max depth of %d.
Explain what's happening as I increase the max depth. How does a deeper tree (e.g., depth 10) lead to overfitting compared to a shallower tree (e.g., depth 2)?
What are the signs of overfitting in a decision tree?`, maxDepth)
}

// QuizPrompt asks why the correct answer is right and, if needed, why the
// student's answer is wrong.
func QuizPrompt(question, userAnswer, correctAnswer string) string {
	return fmt.Sprintf(`A student is reviewing a quiz.
Question: %q
Their answer was: %q
The correct answer is: %q

Please explain why the correct answer is right and, if their answer was wrong, why it was incorrect. Keep the explanation clear and educational.`,
		question, userAnswer, correctAnswer)
}
